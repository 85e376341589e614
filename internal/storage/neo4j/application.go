package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/job-finder/internal/domain"
	"github.com/honeycarbs/job-finder/internal/repository"
	pkgneo4j "github.com/honeycarbs/job-finder/pkg/neo4j"
)

// Ensure ApplicationRepository implements repository.ApplicationRepository
var _ repository.ApplicationRepository = (*ApplicationRepository)(nil)

// ApplicationRepository stores applications as (:Application) nodes linked to
// the (:Role) and (:Company) they target
type ApplicationRepository struct {
	client *pkgneo4j.Client
	clock  func() time.Time
}

// NewApplicationRepository creates an ApplicationRepository with a Neo4j client
func NewApplicationRepository(client *pkgneo4j.Client) *ApplicationRepository {
	return &ApplicationRepository{
		client: client,
		clock:  time.Now,
	}
}

// EnsureSchema creates the uniqueness constraint on application ids
func (r *ApplicationRepository) EnsureSchema(ctx context.Context) error {
	session := r.client.NewSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx,
			`CREATE CONSTRAINT application_id IF NOT EXISTS FOR (a:Application) REQUIRE a.id IS UNIQUE`,
			nil,
		)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j: ensure application schema: %w", err)
	}
	return nil
}

const linkTargetsQuery = `
		WITH a
		OPTIONAL MATCH (a)-[old:APPLIES_FOR|TARGETS]->()
		DELETE old
		WITH DISTINCT a
		FOREACH (_ IN CASE WHEN a.jobRole <> "" THEN [1] ELSE [] END |
			MERGE (r:Role {name: a.jobRole})
			MERGE (a)-[:APPLIES_FOR]->(r)
		)
		FOREACH (_ IN CASE WHEN a.company <> "" THEN [1] ELSE [] END |
			MERGE (c:Company {name: a.company})
			MERGE (a)-[:TARGETS]->(c)
		)
		RETURN a
`

// List returns applications, most recently updated first
func (r *ApplicationRepository) List(ctx context.Context) ([]domain.StoredApplication, error) {
	session := r.client.NewSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := `
		MATCH (a:Application)
		RETURN a
		ORDER BY a.updatedAt DESC, a.createdAt ASC
	`

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}

		apps := make([]domain.StoredApplication, 0, len(records))
		for _, record := range records {
			app, ok := applicationFromRecord(record)
			if !ok {
				continue
			}
			apps = append(apps, app)
		}
		return apps, nil
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j: list applications: %w", err)
	}

	return out.([]domain.StoredApplication), nil
}

// Create stores record as a new Application node
func (r *ApplicationRepository) Create(ctx context.Context, record domain.ApplicationRecord) (domain.StoredApplication, error) {
	session := r.client.NewSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	params := recordParams(record)
	params["id"] = uuid.NewString()
	params["now"] = r.clock().UTC().UnixMilli()

	query := `
		CREATE (a:Application {id: $id})
		SET a.name = $name,
		    a.age = $age,
		    a.email = $email,
		    a.experience = $experience,
		    a.jobRole = $jobRole,
		    a.company = $company,
		    a.createdAt = datetime({epochMillis: $now}),
		    a.updatedAt = datetime({epochMillis: $now})
	` + linkTargetsQuery

	app, err := r.writeOne(ctx, session, query, params)
	if err != nil {
		return domain.StoredApplication{}, fmt.Errorf("neo4j: create application: %w", err)
	}
	return app, nil
}

// Update overwrites the Application node with the given id
func (r *ApplicationRepository) Update(ctx context.Context, id domain.RecordID, record domain.ApplicationRecord) (domain.StoredApplication, error) {
	session := r.client.NewSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	params := recordParams(record)
	params["id"] = string(id)
	params["now"] = r.clock().UTC().UnixMilli()

	query := `
		MATCH (a:Application {id: $id})
		SET a.name = $name,
		    a.age = $age,
		    a.email = $email,
		    a.experience = $experience,
		    a.jobRole = $jobRole,
		    a.company = $company,
		    a.updatedAt = datetime({epochMillis: $now})
	` + linkTargetsQuery

	app, err := r.writeOne(ctx, session, query, params)
	if err != nil {
		return domain.StoredApplication{}, fmt.Errorf("neo4j: update application: %w", err)
	}
	return app, nil
}

func (r *ApplicationRepository) writeOne(ctx context.Context, session neo4j.SessionWithContext, query string, params map[string]any) (domain.StoredApplication, error) {
	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, repository.ErrNotFound
		}
		app, ok := applicationFromRecord(records[0])
		if !ok {
			return nil, fmt.Errorf("unexpected application node shape")
		}
		return app, nil
	})
	if err != nil {
		return domain.StoredApplication{}, err
	}
	return out.(domain.StoredApplication), nil
}

func recordParams(record domain.ApplicationRecord) map[string]any {
	return map[string]any{
		"name":       record.Name,
		"age":        record.Age,
		"email":      record.Email,
		"experience": record.Experience,
		"jobRole":    record.JobRole,
		"company":    record.Company,
	}
}

func applicationFromRecord(record *neo4j.Record) (domain.StoredApplication, bool) {
	val, ok := record.Get("a")
	if !ok {
		return domain.StoredApplication{}, false
	}
	node, ok := val.(neo4j.Node)
	if !ok {
		return domain.StoredApplication{}, false
	}

	props := node.Props
	id := stringProp(props, "id")
	if id == "" {
		return domain.StoredApplication{}, false
	}

	return domain.StoredApplication{
		ID: domain.RecordID(id),
		Record: domain.ApplicationRecord{
			Name:       stringProp(props, "name"),
			Age:        stringProp(props, "age"),
			Email:      stringProp(props, "email"),
			Experience: stringProp(props, "experience"),
			JobRole:    stringProp(props, "jobRole"),
			Company:    stringProp(props, "company"),
		},
		CreatedAt: timeProp(props, "createdAt"),
		UpdatedAt: timeProp(props, "updatedAt"),
	}, true
}

func stringProp(props map[string]any, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

func timeProp(props map[string]any, key string) time.Time {
	switch v := props[key].(type) {
	case time.Time:
		return v.UTC()
	case neo4j.LocalDateTime:
		return v.Time().UTC()
	default:
		return time.Time{}
	}
}
