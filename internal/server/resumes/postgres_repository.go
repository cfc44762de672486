package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ekarpova/resumecraft/internal/common"
	"github.com/ekarpova/resumecraft/internal/resume"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

// nullDate converts a wire date to a nullable DB value. Payloads are
// validated before they reach the repository, so a parse failure here is a
// programming error and surfaces as one.
func nullDate(s string) (sql.NullTime, error) {
	if s == "" {
		return sql.NullTime{}, nil
	}
	t, err := time.Parse(common.DateLayout, s)
	if err != nil {
		return sql.NullTime{}, fmt.Errorf("unvalidated date %q: %w", s, err)
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}

func wireDate(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(common.DateLayout)
}

func (r *PostgresRepository) Create(ctx context.Context, userID, title string, template resume.Template) (string, error) {

	query :=
		`INSERT INTO resumes (user_id, title, template)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	var id string
	err := r.db.QueryRowContext(ctx, query, userID, title, string(template)).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("error performing sql request: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]resume.Summary, error) {

	query :=
		`SELECT r.id, r.title, r.template, r.is_public, r.created_at, r.updated_at,
		        coalesce(pi.first_name, ''), coalesce(pi.last_name, ''), coalesce(pi.email, '')
		 FROM resumes r
		 LEFT JOIN personal_info pi ON r.id = pi.resume_id
		 WHERE r.user_id = $1
		 ORDER BY r.updated_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	result := make([]resume.Summary, 0)
	for rows.Next() {
		var s resume.Summary
		if err := rows.Scan(&s.ID, &s.Title, &s.Template, &s.IsPublic, &s.CreatedAt, &s.UpdatedAt,
			&s.FirstName, &s.LastName, &s.Email); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result = append(result, s)
	}

	return result, rows.Err()
}

func (r *PostgresRepository) GetOwned(ctx context.Context, id, userID string) (*resume.Resume, error) {

	query :=
		`SELECT id, user_id, title, template, is_public, created_at, updated_at
		 FROM resumes
		 WHERE id = $1 AND user_id = $2
		 `

	res := &resume.Resume{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&res.ID, &res.UserID, &res.Title, &res.Template, &res.IsPublic, &res.CreatedAt, &res.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return res, nil
}

func (r *PostgresRepository) GetAggregate(ctx context.Context, id, userID string) (*resume.Aggregate, error) {

	base, err := r.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	agg := &resume.Aggregate{
		Resume:         *base,
		PersonalInfo:   &resume.PersonalInfo{},
		WorkExperience: make([]resume.WorkExperience, 0),
		Education:      make([]resume.Education, 0),
		Skills:         make([]resume.Skill, 0),
		Projects:       make([]resume.Project, 0),
		Certifications: make([]resume.Certification, 0),
		Languages:      make([]resume.Language, 0),
	}

	if err := r.readPersonalInfo(ctx, id, agg); err != nil {
		return nil, err
	}
	if err := r.readWorkExperience(ctx, id, agg); err != nil {
		return nil, err
	}
	if err := r.readEducation(ctx, id, agg); err != nil {
		return nil, err
	}
	if err := r.readSkills(ctx, id, agg); err != nil {
		return nil, err
	}
	if err := r.readProjects(ctx, id, agg); err != nil {
		return nil, err
	}
	if err := r.readCertifications(ctx, id, agg); err != nil {
		return nil, err
	}
	if err := r.readLanguages(ctx, id, agg); err != nil {
		return nil, err
	}

	return agg, nil
}

func (r *PostgresRepository) readPersonalInfo(ctx context.Context, resumeID string, agg *resume.Aggregate) error {
	query :=
		`SELECT first_name, last_name, email,
		        coalesce(phone, ''), coalesce(address, ''), coalesce(city, ''),
		        coalesce(state, ''), coalesce(zip_code, ''), coalesce(country, ''),
		        coalesce(linkedin_url, ''), coalesce(github_url, ''), coalesce(website_url, ''),
		        coalesce(summary, '')
		 FROM personal_info
		 WHERE resume_id = $1
		 `

	p := &resume.PersonalInfo{}
	err := r.db.QueryRowContext(ctx, query, resumeID).Scan(
		&p.FirstName, &p.LastName, &p.Email,
		&p.Phone, &p.Address, &p.City,
		&p.State, &p.ZipCode, &p.Country,
		&p.LinkedinURL, &p.GithubURL, &p.WebsiteURL,
		&p.Summary)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Absent personal info stays an empty object.
			return nil
		}
		return fmt.Errorf("error performing sql request: %w", err)
	}

	agg.PersonalInfo = p
	return nil
}

func (r *PostgresRepository) readWorkExperience(ctx context.Context, resumeID string, agg *resume.Aggregate) error {
	query :=
		`SELECT id, company_name, position, coalesce(location, ''),
		        start_date, end_date, is_current,
		        coalesce(description, ''), coalesce(achievements, '')
		 FROM work_experience
		 WHERE resume_id = $1
		 ORDER BY start_date DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, resumeID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var w resume.WorkExperience
		var start, end sql.NullTime
		if err := rows.Scan(&w.ID, &w.CompanyName, &w.Position, &w.Location,
			&start, &end, &w.IsCurrent, &w.Description, &w.Achievements); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		w.StartDate = wireDate(start)
		w.EndDate = wireDate(end)
		agg.WorkExperience = append(agg.WorkExperience, w)
	}

	return rows.Err()
}

func (r *PostgresRepository) readEducation(ctx context.Context, resumeID string, agg *resume.Aggregate) error {
	query :=
		`SELECT id, institution, degree, coalesce(field_of_study, ''), coalesce(location, ''),
		        start_date, end_date, is_current, gpa, coalesce(description, '')
		 FROM education
		 WHERE resume_id = $1
		 ORDER BY start_date DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, resumeID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e resume.Education
		var start, end sql.NullTime
		var gpa sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.Institution, &e.Degree, &e.FieldOfStudy, &e.Location,
			&start, &end, &e.IsCurrent, &gpa, &e.Description); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		e.StartDate = wireDate(start)
		e.EndDate = wireDate(end)
		if gpa.Valid {
			v := gpa.Float64
			e.GPA = &v
		}
		agg.Education = append(agg.Education, e)
	}

	return rows.Err()
}

func (r *PostgresRepository) readSkills(ctx context.Context, resumeID string, agg *resume.Aggregate) error {
	query :=
		`SELECT id, skill_name, skill_level, coalesce(category, '')
		 FROM skills
		 WHERE resume_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, resumeID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s resume.Skill
		if err := rows.Scan(&s.ID, &s.SkillName, &s.SkillLevel, &s.Category); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		agg.Skills = append(agg.Skills, s)
	}

	return rows.Err()
}

func (r *PostgresRepository) readProjects(ctx context.Context, resumeID string, agg *resume.Aggregate) error {
	query :=
		`SELECT id, name, coalesce(description, ''), coalesce(technologies, ''),
		        coalesce(project_url, ''), coalesce(github_url, ''), start_date, end_date
		 FROM projects
		 WHERE resume_id = $1
		 ORDER BY start_date DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, resumeID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p resume.Project
		var start, end sql.NullTime
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Technologies,
			&p.ProjectURL, &p.GithubURL, &start, &end); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		p.StartDate = wireDate(start)
		p.EndDate = wireDate(end)
		agg.Projects = append(agg.Projects, p)
	}

	return rows.Err()
}

func (r *PostgresRepository) readCertifications(ctx context.Context, resumeID string, agg *resume.Aggregate) error {
	query :=
		`SELECT id, name, coalesce(issuing_organization, ''), issue_date, expiry_date,
		        coalesce(credential_id, ''), coalesce(credential_url, '')
		 FROM certifications
		 WHERE resume_id = $1
		 ORDER BY issue_date DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, resumeID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c resume.Certification
		var issued, expires sql.NullTime
		if err := rows.Scan(&c.ID, &c.Name, &c.IssuingOrganization, &issued, &expires,
			&c.CredentialID, &c.CredentialURL); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		c.IssueDate = wireDate(issued)
		c.ExpiryDate = wireDate(expires)
		agg.Certifications = append(agg.Certifications, c)
	}

	return rows.Err()
}

func (r *PostgresRepository) readLanguages(ctx context.Context, resumeID string, agg *resume.Aggregate) error {
	query :=
		`SELECT id, language, coalesce(proficiency, '')
		 FROM languages
		 WHERE resume_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, resumeID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l resume.Language
		if err := rows.Scan(&l.ID, &l.Language, &l.Proficiency); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		agg.Languages = append(agg.Languages, l)
	}

	return rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, id, userID, title string, template resume.Template, isPublic bool) error {

	query :=
		`UPDATE resumes SET title = $1, template = $2, is_public = $3, updated_at = now()
		 WHERE id = $4 AND user_id = $5
		 `

	res, err := r.db.ExecContext(ctx, query, title, string(template), isPublic, id, userID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// UpsertPersonalInfo creates the personal info row for a resume or fully
// overwrites the existing one. personal_info has a unique constraint on
// resume_id, which makes ON CONFLICT the whole upsert.
func (r *PostgresRepository) UpsertPersonalInfo(ctx context.Context, resumeID string, p *resume.PersonalInfo) error {

	query :=
		`INSERT INTO personal_info
		   (resume_id, first_name, last_name, email, phone, address, city, state,
		    zip_code, country, linkedin_url, github_url, website_url, summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (resume_id) DO UPDATE SET
		   first_name = excluded.first_name, last_name = excluded.last_name,
		   email = excluded.email, phone = excluded.phone, address = excluded.address,
		   city = excluded.city, state = excluded.state, zip_code = excluded.zip_code,
		   country = excluded.country, linkedin_url = excluded.linkedin_url,
		   github_url = excluded.github_url, website_url = excluded.website_url,
		   summary = excluded.summary
		 `

	_, err := r.db.ExecContext(ctx, query, resumeID,
		p.FirstName, p.LastName, p.Email, p.Phone, p.Address, p.City, p.State,
		p.ZipCode, p.Country, p.LinkedinURL, p.GithubURL, p.WebsiteURL, p.Summary)

	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	return nil
}

func (r *PostgresRepository) AddWorkExperience(ctx context.Context, resumeID string, w *resume.WorkExperience) (string, error) {

	start, err := nullDate(w.StartDate)
	if err != nil {
		return "", err
	}
	end, err := nullDate(w.EndDate)
	if err != nil {
		return "", err
	}

	query :=
		`INSERT INTO work_experience
		   (resume_id, company_name, position, location, start_date, end_date,
		    is_current, description, achievements)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id
		 `

	var id string
	err = r.db.QueryRowContext(ctx, query, resumeID,
		w.CompanyName, w.Position, w.Location, start, end,
		w.IsCurrent, w.Description, w.Achievements).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("error performing sql request: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) AddEducation(ctx context.Context, resumeID string, e *resume.Education) (string, error) {

	start, err := nullDate(e.StartDate)
	if err != nil {
		return "", err
	}
	end, err := nullDate(e.EndDate)
	if err != nil {
		return "", err
	}

	var gpa sql.NullFloat64
	if e.GPA != nil {
		gpa = sql.NullFloat64{Float64: *e.GPA, Valid: true}
	}

	query :=
		`INSERT INTO education
		   (resume_id, institution, degree, field_of_study, location, start_date,
		    end_date, is_current, gpa, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id
		 `

	var id string
	err = r.db.QueryRowContext(ctx, query, resumeID,
		e.Institution, e.Degree, e.FieldOfStudy, e.Location, start,
		end, e.IsCurrent, gpa, e.Description).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("error performing sql request: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) AddSkill(ctx context.Context, resumeID string, s *resume.Skill) (string, error) {

	query :=
		`INSERT INTO skills (resume_id, skill_name, skill_level, category)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	var id string
	err := r.db.QueryRowContext(ctx, query, resumeID,
		s.SkillName, string(s.SkillLevel), s.Category).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("error performing sql request: %w", err)
	}

	return id, nil
}
