package postgres

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/persistence/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewProjectRepository(q *db.Queries, pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{q: q, pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return runInTx(ctx, r.pool, func(q *db.Queries) error {
		if err := q.CreateProject(ctx, domainProjectToDB(p)); err != nil {
			return err
		}
		return insertProjectChildren(ctx, q, p.ID.UUID, p.Technologies, p.Processes)
	})
}

func insertProjectChildren(ctx context.Context, q *db.Queries, projectID uuid.UUID, techs []domain.Technology, procs []domain.Process) error {
	for _, t := range techs {
		if err := q.CreateTechnology(ctx, techToDB(projectID, t)); err != nil {
			return err
		}
	}
	for _, p := range procs {
		if err := q.CreateProcess(ctx, db.Process{ID: p.ID, OwnerID: projectID, Name: p.Name}); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	p, err := r.q.GetProjectByID(ctx, id.UUID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	list, err := r.withChildren(ctx, []db.Project{p})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID domain.UserID) ([]*domain.Project, error) {
	rows, err := r.q.ListProjectsByUser(ctx, userID.UUID)
	if err != nil {
		return nil, err
	}
	return r.withChildren(ctx, rows)
}

func (r *ProjectRepository) withChildren(ctx context.Context, rows []db.Project) ([]*domain.Project, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, p := range rows {
		ids = append(ids, p.ID)
	}
	techs, procs, err := loadChildren(ctx, ids, r.q.ListTechnologiesByProjects, r.q.ListProcessesByProjects)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Project, 0, len(rows))
	for _, p := range rows {
		dp := dbProjectToDomain(p)
		dp.Technologies = techs[p.ID]
		dp.Processes = procs[p.ID]
		out = append(out, dp)
	}
	return out, nil
}

// Update writes the project fields and applies the child diff in one transaction.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project, diff domain.ChildDiff) error {
	return runInTx(ctx, r.pool, func(q *db.Queries) error {
		if err := q.UpdateProject(ctx, domainProjectToDB(p)); err != nil {
			return err
		}
		for _, id := range diff.DeleteTechnologies {
			if err := q.DeleteTechnology(ctx, id); err != nil {
				return err
			}
		}
		for _, t := range diff.UpdateTechnologies {
			if err := q.UpdateTechnologyDuration(ctx, t.ID, int32(t.DurationMonths)); err != nil {
				return err
			}
		}
		for _, id := range diff.DeleteProcesses {
			if err := q.DeleteProcess(ctx, id); err != nil {
				return err
			}
		}
		return insertProjectChildren(ctx, q, p.ID.UUID, diff.InsertTechnologies, diff.InsertProcesses)
	})
}

func (r *ProjectRepository) Delete(ctx context.Context, id domain.ProjectID) error {
	return r.q.DeleteProject(ctx, id.UUID)
}

func (r *ProjectRepository) Search(ctx context.Context, f ports.ProjectFilter, page ports.Page) ([]ports.ProjectSummary, int, error) {
	return searchProjects(ctx, r.pool, f, page)
}

type techLister func(context.Context, []uuid.UUID) ([]db.Technology, error)
type processLister func(context.Context, []uuid.UUID) ([]db.Process, error)

// loadChildren fetches technologies and processes for many owners with two queries.
func loadChildren(ctx context.Context, ownerIDs []uuid.UUID, listTechs techLister, listProcs processLister) (map[uuid.UUID][]domain.Technology, map[uuid.UUID][]domain.Process, error) {
	techs := make(map[uuid.UUID][]domain.Technology, len(ownerIDs))
	procs := make(map[uuid.UUID][]domain.Process, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return techs, procs, nil
	}
	ts, err := listTechs(ctx, ownerIDs)
	if err != nil {
		return nil, nil, err
	}
	for _, t := range ts {
		techs[t.OwnerID] = append(techs[t.OwnerID], domain.Technology{
			ID:             t.ID,
			Category:       domain.Category(t.Category),
			Name:           t.Name,
			DurationMonths: int(t.DurationMonths),
		})
	}
	ps, err := listProcs(ctx, ownerIDs)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range ps {
		procs[p.OwnerID] = append(procs[p.OwnerID], domain.Process{ID: p.ID, Name: p.Name})
	}
	return techs, procs, nil
}

func techToDB(ownerID uuid.UUID, t domain.Technology) db.Technology {
	return db.Technology{
		ID:             t.ID,
		OwnerID:        ownerID,
		Category:       string(t.Category),
		Name:           t.Name,
		DurationMonths: int32(t.DurationMonths),
	}
}

func domainProjectToDB(p *domain.Project) db.Project {
	return db.Project{
		ID:               p.ID.UUID,
		UserID:           p.UserID.UUID,
		StartMonth:       p.StartMonth,
		EndMonth:         p.EndMonth,
		Industry:         p.Industry,
		Name:             p.Name,
		Summary:          p.Summary,
		Responsibilities: p.Responsibilities,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func dbProjectToDomain(p db.Project) *domain.Project {
	return &domain.Project{
		ID:               domain.NewProjectID(p.ID),
		UserID:           domain.NewUserID(p.UserID),
		StartMonth:       p.StartMonth,
		EndMonth:         p.EndMonth,
		Industry:         p.Industry,
		Name:             p.Name,
		Summary:          p.Summary,
		Responsibilities: p.Responsibilities,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// Ensure ProjectRepository implements ports.ProjectRepository.
var _ ports.ProjectRepository = (*ProjectRepository)(nil)
