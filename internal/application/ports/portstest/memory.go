// Package portstest provides in-memory implementations of the application ports for tests.
package portstest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
)

// Store holds every entity in maps and implements all repository ports.
type Store struct {
	mu          sync.Mutex
	users       map[uuid.UUID]domain.User
	projects    map[uuid.UUID]domain.Project
	individuals map[uuid.UUID]domain.IndividualDevelopment
	links       map[uuid.UUID]domain.Link
	contacts    map[uuid.UUID]domain.Contact
	seq         int
	order       map[uuid.UUID]int
}

func NewStore() *Store {
	return &Store{
		users:       make(map[uuid.UUID]domain.User),
		projects:    make(map[uuid.UUID]domain.Project),
		individuals: make(map[uuid.UUID]domain.IndividualDevelopment),
		links:       make(map[uuid.UUID]domain.Link),
		contacts:    make(map[uuid.UUID]domain.Contact),
		order:       make(map[uuid.UUID]int),
	}
}

func (s *Store) Users() *UserRepo             { return &UserRepo{s} }
func (s *Store) Projects() *ProjectRepo       { return &ProjectRepo{s} }
func (s *Store) Individuals() *IndividualRepo { return &IndividualRepo{s} }
func (s *Store) Links() *LinkRepo             { return &LinkRepo{s} }
func (s *Store) Contacts() *ContactRepo       { return &ContactRepo{s} }

func (s *Store) stamp(id uuid.UUID) {
	s.seq++
	s.order[id] = s.seq
}

// AllLinks returns every stored link for a user, active or not.
func (s *Store) AllLinks(userID domain.UserID) []domain.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Link
	for _, l := range s.links {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out
}

func cloneTechs(ts []domain.Technology) []domain.Technology {
	return append([]domain.Technology(nil), ts...)
}

func cloneProcs(ps []domain.Process) []domain.Process {
	return append([]domain.Process(nil), ps...)
}

// UserRepo implements ports.UserRepository.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return errors.New("unique violation")
		}
	}
	r.s.users[user.ID.UUID] = *user
	r.s.stamp(user.ID.UUID)
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID.UUID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username })
}

func (r *UserRepo) find(match func(domain.User) bool) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[user.ID.UUID]
	if !ok {
		return nil
	}
	next := *user
	next.PasswordHash = cur.PasswordHash
	r.s.users[user.ID.UUID] = next
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID domain.UserID, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[userID.UUID]; ok {
		u.PasswordHash = passwordHash
		r.s.users[userID.UUID] = u
	}
	return nil
}

func (r *UserRepo) SetActive(ctx context.Context, userID domain.UserID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[userID.UUID]; ok {
		u.IsActive = true
		r.s.users[userID.UUID] = u
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, userID domain.UserID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, userID.UUID)
	for id, p := range r.s.projects {
		if p.UserID == userID {
			delete(r.s.projects, id)
		}
	}
	for id, d := range r.s.individuals {
		if d.UserID == userID {
			delete(r.s.individuals, id)
		}
	}
	for id, l := range r.s.links {
		if l.UserID == userID {
			delete(r.s.links, id)
		}
	}
	return nil
}

func (r *UserRepo) Search(ctx context.Context, f ports.UserFilter, page ports.Page) ([]ports.UserSummary, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []ports.UserSummary
	for _, u := range r.s.users {
		if f.UserID != "" && u.ID.String() != f.UserID {
			continue
		}
		if !contains(u.Username, f.Username) || !contains(u.Email, f.Email) {
			continue
		}
		if f.IsAdmin != nil && u.IsAdmin != *f.IsAdmin {
			continue
		}
		if f.Age != nil && (u.Profile.Age == nil || *u.Profile.Age != *f.Age) {
			continue
		}
		sum := ports.UserSummary{User: u}
		for _, l := range r.s.links {
			if l.UserID == u.ID && l.IsActive {
				sum.ActiveLinkCode = l.Code
			}
		}
		if f.LinkCode != "" && !contains(sum.ActiveLinkCode, f.LinkCode) {
			continue
		}
		all = append(all, sum)
	}
	sort.Slice(all, func(i, j int) bool { return r.s.order[all[i].User.ID.UUID] < r.s.order[all[j].User.ID.UUID] })
	return paginate(all, page), len(all), nil
}

func (r *UserRepo) ListUnconfirmedBefore(ctx context.Context, before time.Time) ([]domain.UserID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.UserID
	for _, u := range r.s.users {
		if !u.IsActive && u.CreatedAt.Before(before) {
			out = append(out, u.ID)
		}
	}
	return out, nil
}

// ProjectRepo implements ports.ProjectRepository.
type ProjectRepo struct{ s *Store }

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	cp.Technologies = cloneTechs(p.Technologies)
	cp.Processes = cloneProcs(p.Processes)
	r.s.projects[p.ID.UUID] = cp
	r.s.stamp(p.ID.UUID)
	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id.UUID]
	if !ok {
		return nil, nil
	}
	p.Technologies = cloneTechs(p.Technologies)
	p.Processes = cloneProcs(p.Processes)
	return &p, nil
}

func (r *ProjectRepo) ListByUser(ctx context.Context, userID domain.UserID) ([]*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Project
	for _, p := range r.s.projects {
		if p.UserID == userID {
			p := p
			p.Technologies = cloneTechs(p.Technologies)
			p.Processes = cloneProcs(p.Processes)
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartMonth != out[j].StartMonth {
			return out[i].StartMonth < out[j].StartMonth
		}
		return r.s.order[out[i].ID.UUID] < r.s.order[out[j].ID.UUID]
	})
	return out, nil
}

func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project, diff domain.ChildDiff) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.projects[p.ID.UUID]
	if !ok {
		return nil
	}
	next := *p
	next.Technologies = applyTechDiff(cur.Technologies, diff)
	next.Processes = applyProcessDiff(cur.Processes, diff)
	r.s.projects[p.ID.UUID] = next
	return nil
}

func applyTechDiff(cur []domain.Technology, diff domain.ChildDiff) []domain.Technology {
	deleted := make(map[uuid.UUID]bool)
	for _, id := range diff.DeleteTechnologies {
		deleted[id] = true
	}
	updated := make(map[uuid.UUID]domain.Technology)
	for _, t := range diff.UpdateTechnologies {
		updated[t.ID] = t
	}
	var out []domain.Technology
	for _, t := range cur {
		if deleted[t.ID] {
			continue
		}
		if u, ok := updated[t.ID]; ok {
			t = u
		}
		out = append(out, t)
	}
	return append(out, diff.InsertTechnologies...)
}

func applyProcessDiff(cur []domain.Process, diff domain.ChildDiff) []domain.Process {
	deleted := make(map[uuid.UUID]bool)
	for _, id := range diff.DeleteProcesses {
		deleted[id] = true
	}
	var out []domain.Process
	for _, p := range cur {
		if !deleted[p.ID] {
			out = append(out, p)
		}
	}
	return append(out, diff.InsertProcesses...)
}

func (r *ProjectRepo) Delete(ctx context.Context, id domain.ProjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.projects, id.UUID)
	return nil
}

func (r *ProjectRepo) Search(ctx context.Context, f ports.ProjectFilter, page ports.Page) ([]ports.ProjectSummary, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []ports.ProjectSummary
	for _, p := range r.s.projects {
		if f.ProjectID != "" && p.ID.String() != f.ProjectID {
			continue
		}
		if !contains(p.Name, f.Name) || !contains(p.Industry, f.Industry) {
			continue
		}
		if f.StartFrom != "" && p.StartMonth < f.StartFrom {
			continue
		}
		if f.EndUntil != "" && p.EndMonth > f.EndUntil {
			continue
		}
		sum := ports.ProjectSummary{Project: p, Processes: domain.ProcessNames(p.Processes)}
		techHit := f.Technology == ""
		for _, t := range p.Technologies {
			sum.Technologies = append(sum.Technologies, t.Name)
			if contains(t.Name, f.Technology) {
				techHit = true
			}
		}
		if !techHit {
			continue
		}
		all = append(all, sum)
	}
	sort.Slice(all, func(i, j int) bool { return r.s.order[all[i].Project.ID.UUID] < r.s.order[all[j].Project.ID.UUID] })
	return paginate(all, page), len(all), nil
}

// IndividualRepo implements ports.IndividualRepository.
type IndividualRepo struct{ s *Store }

func (r *IndividualRepo) Create(ctx context.Context, d *domain.IndividualDevelopment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.individuals[d.ID.UUID] = *d
	r.s.stamp(d.ID.UUID)
	return nil
}

func (r *IndividualRepo) GetByID(ctx context.Context, id domain.IndividualID) (*domain.IndividualDevelopment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.individuals[id.UUID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *IndividualRepo) ListByUser(ctx context.Context, userID domain.UserID) ([]*domain.IndividualDevelopment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.IndividualDevelopment
	for _, d := range r.s.individuals {
		if d.UserID == userID {
			d := d
			out = append(out, &d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.order[out[i].ID.UUID] < r.s.order[out[j].ID.UUID] })
	return out, nil
}

func (r *IndividualRepo) Delete(ctx context.Context, id domain.IndividualID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.individuals, id.UUID)
	return nil
}

// LinkRepo implements ports.LinkRepository.
type LinkRepo struct{ s *Store }

func (r *LinkRepo) Issue(ctx context.Context, link *domain.Link) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, l := range r.s.links {
		if l.UserID == link.UserID && l.IsActive {
			l.IsActive = false
			r.s.links[id] = l
		}
	}
	r.s.links[link.ID] = *link
	return nil
}

func (r *LinkRepo) GetActiveByCode(ctx context.Context, code string) (*domain.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.links {
		if l.Code == code && l.IsActive {
			l := l
			return &l, nil
		}
	}
	return nil, nil
}

func (r *LinkRepo) GetActiveByUser(ctx context.Context, userID domain.UserID) (*domain.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.links {
		if l.UserID == userID && l.IsActive {
			l := l
			return &l, nil
		}
	}
	return nil, nil
}

func (r *LinkRepo) Invalidate(ctx context.Context, userID domain.UserID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, l := range r.s.links {
		if l.UserID == userID {
			delete(r.s.links, id)
		}
	}
	return nil
}

// ContactRepo implements ports.ContactRepository.
type ContactRepo struct{ s *Store }

func (r *ContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.contacts[c.ID.UUID] = *c
	r.s.stamp(c.ID.UUID)
	return nil
}

func (r *ContactRepo) GetByID(ctx context.Context, id domain.ContactID) (*domain.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.contacts[id.UUID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ContactRepo) List(ctx context.Context) ([]*domain.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Contact
	for _, c := range r.s.contacts {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return r.s.order[out[i].ID.UUID] > r.s.order[out[j].ID.UUID] })
	return out, nil
}

func contains(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func paginate[T any](all []T, page ports.Page) []T {
	start := page.Offset()
	if start >= len(all) {
		return nil
	}
	end := start + page.PerPage
	if page.PerPage <= 0 || end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

var (
	_ ports.UserRepository       = (*UserRepo)(nil)
	_ ports.ProjectRepository    = (*ProjectRepo)(nil)
	_ ports.IndividualRepository = (*IndividualRepo)(nil)
	_ ports.LinkRepository       = (*LinkRepo)(nil)
	_ ports.ContactRepository    = (*ContactRepo)(nil)
)
