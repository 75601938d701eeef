package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/teambuilder-backend/internal/models"
	"github.com/ignatzorin/teambuilder-backend/internal/repository/common"
)

var ErrProfileNotFound = errors.New("profile not found")

const profileColumns = `id, name, email, phone, location, submitted_at, work_availability,
	annual_salary_expectation, work_experiences, education, skills, created_at`

// profileRow строка таблицы profiles; JSONB колонки читаются как байты.
type profileRow struct {
	ID                      string         `db:"id"`
	Name                    string         `db:"name"`
	Email                   string         `db:"email"`
	Phone                   string         `db:"phone"`
	Location                string         `db:"location"`
	SubmittedAt             sql.NullTime   `db:"submitted_at"`
	WorkAvailability        pq.StringArray `db:"work_availability"`
	AnnualSalaryExpectation []byte         `db:"annual_salary_expectation"`
	WorkExperiences         []byte         `db:"work_experiences"`
	Education               []byte         `db:"education"`
	Skills                  pq.StringArray `db:"skills"`
	CreatedAt               time.Time      `db:"created_at"`
}

func (r *profileRow) toCandidate() (models.Candidate, error) {
	c := models.Candidate{
		ID:               r.ID,
		Name:             r.Name,
		Email:            r.Email,
		Phone:            r.Phone,
		Location:         r.Location,
		WorkAvailability: []string(r.WorkAvailability),
		Skills:           []string(r.Skills),
	}
	if r.SubmittedAt.Valid {
		c.SubmittedAt = models.FormatSubmittedAt(r.SubmittedAt.Time)
	}
	if err := unmarshalJSONB(r.AnnualSalaryExpectation, &c.AnnualSalaryExpectation); err != nil {
		return c, fmt.Errorf("profile %s: annual_salary_expectation: %w", r.ID, err)
	}
	if err := unmarshalJSONB(r.WorkExperiences, &c.WorkExperiences); err != nil {
		return c, fmt.Errorf("profile %s: work_experiences: %w", r.ID, err)
	}
	if err := unmarshalJSONB(r.Education, &c.Education); err != nil {
		return c, fmt.Errorf("profile %s: education: %w", r.ID, err)
	}
	return c, nil
}

func unmarshalJSONB(raw []byte, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// profileField как поле запроса отображается на SQL выражение.
type profileField struct {
	expr  string
	array bool
}

// profileFields поля, по которым разрешены условия.
var profileFields = map[string]profileField{
	"id":              {expr: "id"},
	"name":            {expr: "name"},
	"email":           {expr: "email"},
	"location":        {expr: "location"},
	"education_level": {expr: "education->>'highest_level'"},
	"skills":          {expr: "skills", array: true},
	"availability":    {expr: "work_availability", array: true},
	"experience":      {expr: "jsonb_array_length(work_experiences)"},
}

// profileOrder поля, по которым хранилище умеет сортировать.
var profileOrder = map[string]string{
	"name":         "name",
	"submitted_at": "submitted_at",
}

// ProfileRepository хранилище профилей кандидатов в PostgreSQL.
type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// QueryProfiles выполняет выборку по q и возвращает строки окна вместе с точным
// количеством строк, подходящих под условия.
func (r *ProfileRepository) QueryProfiles(ctx context.Context, q models.ProfileQuery) ([]models.Candidate, int, error) {
	where, args, err := buildProfileWhere(q.Conditions)
	if err != nil {
		return nil, 0, err
	}
	orderBy, err := buildProfileOrder(q.Order)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + profileColumns + ` FROM profiles` + where + orderBy
	selectArgs := append([]interface{}{}, args...)
	argNum := len(args) + 1
	if q.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argNum)
		selectArgs = append(selectArgs, q.Limit)
		argNum++
	}
	if q.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argNum)
		selectArgs = append(selectArgs, q.Offset)
	}

	var rows []profileRow
	if err := r.db.SelectContext(ctx, &rows, query, selectArgs...); err != nil {
		return nil, 0, fmt.Errorf("query profiles: %w", err)
	}

	cands := make([]models.Candidate, 0, len(rows))
	for i := range rows {
		c, err := rows[i].toCandidate()
		if err != nil {
			return nil, 0, err
		}
		cands = append(cands, c)
	}

	if q.Limit <= 0 && q.Offset == 0 {
		return cands, len(cands), nil
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM profiles`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count profiles: %w", err)
	}
	return cands, total, nil
}

// GetByID возвращает профиль по идентификатору.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Candidate, error) {
	row, err := common.GetByID[profileRow](ctx, r.db, "profiles", id, ErrProfileNotFound)
	if err != nil {
		return nil, err
	}
	c, err := row.toCandidate()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Count количество профилей в таблице.
func (r *ProfileRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM profiles`); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}

const upsertProfilesSuffix = `ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	email = EXCLUDED.email,
	phone = EXCLUDED.phone,
	location = EXCLUDED.location,
	submitted_at = EXCLUDED.submitted_at,
	work_availability = EXCLUDED.work_availability,
	annual_salary_expectation = EXCLUDED.annual_salary_expectation,
	work_experiences = EXCLUDED.work_experiences,
	education = EXCLUDED.education,
	skills = EXCLUDED.skills`

// Upsert вставляет или обновляет профили одной транзакцией, батчами.
func (r *ProfileRepository) Upsert(ctx context.Context, cands []models.Candidate) (int, error) {
	inserted := 0
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		bi := common.NewBatchInserter(tx, `INSERT INTO profiles (id, name, email, phone, location, submitted_at,
			work_availability, annual_salary_expectation, work_experiences, education, skills)`,
			upsertProfilesSuffix, 11, 100)

		for i := range cands {
			values, err := profileValues(&cands[i])
			if err != nil {
				return err
			}
			if err := bi.Add(ctx, values...); err != nil {
				return err
			}
		}
		if err := bi.Flush(ctx); err != nil {
			return err
		}
		inserted = bi.Inserted()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("upsert profiles: %w", err)
	}
	return inserted, nil
}

func profileValues(c *models.Candidate) ([]interface{}, error) {
	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("profile %q: %w", c.ID, common.ErrInvalidInput)
	}

	salary, err := marshalJSONB(c.AnnualSalaryExpectation, "{}")
	if err != nil {
		return nil, err
	}
	experiences, err := marshalJSONB(c.WorkExperiences, "[]")
	if err != nil {
		return nil, err
	}
	education, err := json.Marshal(c.Education)
	if err != nil {
		return nil, err
	}

	var submitted sql.NullTime
	if t, ok := models.ParseSubmittedAt(c.SubmittedAt); ok {
		submitted = sql.NullTime{Time: t, Valid: true}
	}

	return []interface{}{
		c.ID, c.Name, c.Email, c.Phone, c.Location, submitted,
		pq.Array(nonNil(c.WorkAvailability)), string(salary), string(experiences), string(education),
		pq.Array(nonNil(c.Skills)),
	}, nil
}

func marshalJSONB[T any](v T, empty string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" {
		return []byte(empty), nil
	}
	return data, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// buildProfileWhere собирает WHERE из условий; неизвестные поля и операции отклоняются.
func buildProfileWhere(conds []models.Condition) (string, []interface{}, error) {
	if len(conds) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(conds))
	args := make([]interface{}, 0, len(conds))
	argNum := 1

	for _, cond := range conds {
		field, ok := profileFields[cond.Field]
		if !ok {
			return "", nil, fmt.Errorf("profile query: поле %q: %w", cond.Field, common.ErrInvalidInput)
		}

		switch cond.Op {
		case models.OpEq:
			if field.array {
				return "", nil, fmt.Errorf("profile query: eq по массиву %q: %w", cond.Field, common.ErrInvalidInput)
			}
			parts = append(parts, fmt.Sprintf(`%s = $%d`, field.expr, argNum))
			args = append(args, cond.Value)
			argNum++
		case models.OpContains:
			if !field.array {
				return "", nil, fmt.Errorf("profile query: contains по скаляру %q: %w", cond.Field, common.ErrInvalidInput)
			}
			parts = append(parts, fmt.Sprintf(`%s && $%d`, field.expr, argNum))
			args = append(args, pq.Array(cond.Values))
			argNum++
		case models.OpIn:
			if field.array {
				return "", nil, fmt.Errorf("profile query: in по массиву %q: %w", cond.Field, common.ErrInvalidInput)
			}
			parts = append(parts, fmt.Sprintf(`%s = ANY($%d)`, field.expr, argNum))
			args = append(args, pq.Array(cond.Values))
			argNum++
		case models.OpRange:
			parts = append(parts, fmt.Sprintf(`%s BETWEEN $%d AND $%d`, field.expr, argNum, argNum+1))
			args = append(args, cond.From, cond.To)
			argNum += 2
		default:
			return "", nil, fmt.Errorf("profile query: операция %q: %w", cond.Op, common.ErrInvalidInput)
		}
	}

	return ` WHERE ` + strings.Join(parts, ` AND `), args, nil
}

// buildProfileOrder ORDER BY с id в конце, чтобы окна offset/limit не пересекались.
func buildProfileOrder(order []models.OrderBy) (string, error) {
	parts := make([]string, 0, len(order)+1)
	for _, o := range order {
		col, ok := profileOrder[o.Field]
		if !ok {
			return "", fmt.Errorf("profile query: сортировка по %q: %w", o.Field, common.ErrInvalidInput)
		}
		if o.Descending {
			parts = append(parts, col+` DESC NULLS LAST`)
		} else {
			parts = append(parts, col+` ASC`)
		}
	}
	parts = append(parts, `id ASC`)
	return ` ORDER BY ` + strings.Join(parts, `, `), nil
}
