package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
)

// SendEmailVerificationInput is the address to confirm.
type SendEmailVerificationInput struct {
	Email string
}

// SendEmailVerificationResult is empty on success.
type SendEmailVerificationResult struct{}

// SendEmailVerification signs a confirmation token and enqueues the email.
type SendEmailVerification struct {
	signer   ports.ActionTokenSigner
	enqueuer ports.TaskEnqueuer
	baseURL  string
	expiry   time.Duration
}

// NewSendEmailVerification builds the use case. baseURL is the public site root.
func NewSendEmailVerification(signer ports.ActionTokenSigner, enqueuer ports.TaskEnqueuer, baseURL string, expirySecs int64) *SendEmailVerification {
	if expirySecs <= 0 {
		expirySecs = 3600
	}
	return &SendEmailVerification{
		signer:   signer,
		enqueuer: enqueuer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		expiry:   time.Duration(expirySecs) * time.Second,
	}
}

func (uc *SendEmailVerification) Execute(ctx context.Context, input SendEmailVerificationInput) (*SendEmailVerificationResult, error) {
	token, err := uc.signer.Issue(ports.PurposeConfirmEmail, input.Email, uc.expiry)
	if err != nil {
		return nil, err
	}
	confirmURL := fmt.Sprintf("%s/confirm_email/%s", uc.baseURL, token)
	err = uc.enqueuer.EnqueueSendEmail(ctx, ports.OutboundEmail{
		To:      input.Email,
		Subject: "Please confirm your email",
		Body:    "Please click the following link to confirm your email: " + confirmURL,
	})
	if err != nil {
		return nil, err
	}
	return &SendEmailVerificationResult{}, nil
}
