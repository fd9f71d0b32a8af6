package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
)

// ForgotPasswordInput for requesting a password reset email.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordResult returns nothing; email is sent async (or not at all if no user).
type ForgotPasswordResult struct{}

// ForgotPassword signs a reset token and enqueues sending the email.
// Does not reveal whether the email exists.
type ForgotPassword struct {
	signer     ports.ActionTokenSigner
	userRepo   ports.UserRepository
	enqueuer   ports.TaskEnqueuer
	baseURL    string
	expirySecs int64
}

// NewForgotPassword builds the use case.
func NewForgotPassword(signer ports.ActionTokenSigner, userRepo ports.UserRepository, enqueuer ports.TaskEnqueuer, baseURL string, expirySecs int64) *ForgotPassword {
	if expirySecs <= 0 {
		expirySecs = 3600
	}
	return &ForgotPassword{
		signer:     signer,
		userRepo:   userRepo,
		enqueuer:   enqueuer,
		baseURL:    strings.TrimRight(baseURL, "/"),
		expirySecs: expirySecs,
	}
}

// Execute signs the token and enqueues the email. If the email is not found, we still return success.
func (uc *ForgotPassword) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &ForgotPasswordResult{}, nil
	}
	token, err := uc.signer.Issue(ports.PurposeResetPassword, user.Email, time.Duration(uc.expirySecs)*time.Second)
	if err != nil {
		return nil, err
	}
	resetURL := fmt.Sprintf("%s/reset_password/%s", uc.baseURL, token)
	err = uc.enqueuer.EnqueueSendEmail(ctx, ports.OutboundEmail{
		To:      user.Email,
		Subject: "Password Reset Request",
		Body:    "Please click the following link to reset your password: " + resetURL,
	})
	if err != nil {
		return nil, err
	}
	return &ForgotPasswordResult{}, nil
}
