package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-intel/internal/schemas"
	"github.com/jonathan/resume-intel/internal/types"
	schemadocs "github.com/jonathan/resume-intel/schemas"
)

//go:embed data/*.json
var dataFS embed.FS

const (
	defaultSkillsFile  = "data/skills.json"
	defaultJobsFile    = "data/job_roles.json"
	defaultDomainsFile = "data/domains.json"
)

type skillFile struct {
	Skills []types.CanonicalSkill `json:"skills"`
}

type jobFile struct {
	Roles []types.JobRoleDefinition `json:"roles"`
}

type domainFile struct {
	Domains []Domain `json:"domains"`
}

// Paths overrides the embedded catalog data. Empty fields use the built-in data.
type Paths struct {
	Skills  string
	Jobs    string
	Domains string
}

// Default loads the built-in catalogs.
func Default() (*Set, error) {
	return Load(Paths{})
}

// Load reads, schema-validates and cross-checks the three catalogs.
func Load(paths Paths) (*Set, error) {
	skillData, err := readCatalog(NameSkills, paths.Skills, defaultSkillsFile)
	if err != nil {
		return nil, err
	}
	jobData, err := readCatalog(NameJobRoles, paths.Jobs, defaultJobsFile)
	if err != nil {
		return nil, err
	}
	domainData, err := readCatalog(NameDomains, paths.Domains, defaultDomainsFile)
	if err != nil {
		return nil, err
	}

	skills, err := ParseSkills(skillData)
	if err != nil {
		return nil, err
	}
	jobs, err := ParseJobs(jobData, skills)
	if err != nil {
		return nil, err
	}
	domains, err := ParseDomains(domainData)
	if err != nil {
		return nil, err
	}

	return &Set{Skills: skills, Jobs: jobs, Domains: domains}, nil
}

// ParseSkills builds a SkillCatalog from JSON conforming to skill_catalog.schema.json.
func ParseSkills(data []byte) (*SkillCatalog, error) {
	if err := schemas.ValidateDocument(schemadocs.SkillCatalog, data); err != nil {
		return nil, &CatalogError{Catalog: NameSkills, Message: "schema validation failed", Cause: err}
	}
	var f skillFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &CatalogError{Catalog: NameSkills, Message: "failed to parse JSON", Cause: err}
	}
	return NewSkillCatalog(f.Skills)
}

// ParseJobs builds a JobCatalog from JSON conforming to job_catalog.schema.json.
func ParseJobs(data []byte, skills *SkillCatalog) (*JobCatalog, error) {
	if err := schemas.ValidateDocument(schemadocs.JobCatalog, data); err != nil {
		return nil, &CatalogError{Catalog: NameJobRoles, Message: "schema validation failed", Cause: err}
	}
	var f jobFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &CatalogError{Catalog: NameJobRoles, Message: "failed to parse JSON", Cause: err}
	}
	return NewJobCatalog(f.Roles, skills)
}

// ParseDomains builds a DomainCatalog from JSON conforming to domain_catalog.schema.json.
func ParseDomains(data []byte) (*DomainCatalog, error) {
	if err := schemas.ValidateDocument(schemadocs.DomainCatalog, data); err != nil {
		return nil, &CatalogError{Catalog: NameDomains, Message: "schema validation failed", Cause: err}
	}
	var f domainFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &CatalogError{Catalog: NameDomains, Message: "failed to parse JSON", Cause: err}
	}
	return NewDomainCatalog(f.Domains)
}

func readCatalog(name, path, embedded string) ([]byte, error) {
	if path == "" {
		data, err := dataFS.ReadFile(embedded)
		if err != nil {
			return nil, &CatalogError{Catalog: name, Message: "failed to read embedded data", Cause: err}
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CatalogError{Catalog: name, Message: fmt.Sprintf("failed to read %s", path), Cause: err}
	}
	return data, nil
}
