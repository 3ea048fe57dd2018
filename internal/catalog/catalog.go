// Package catalog provides the immutable skill, job-role and domain reference tables.
package catalog

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-intel/internal/textmatch"
	"github.com/jonathan/resume-intel/internal/types"
)

// Catalog names used in CatalogError.
const (
	NameSkills   = "skills"
	NameJobRoles = "job_roles"
	NameDomains  = "domains"
)

// Key returns the lookup key for a skill name, alias or free-text term:
// Unicode case folded, surrounding punctuation trimmed and inner whitespace collapsed.
func Key(s string) string {
	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '.' || r == ',' || r == ';' || r == ':' || r == '-' || r == '*' || r == '•'
	})
	return textmatch.Fold(s)
}

// SkillCatalog is an ordered set of canonical skills indexed by name and alias.
type SkillCatalog struct {
	skills  []types.CanonicalSkill
	byName  map[string]int // Key(name) -> index
	byAlias map[string]int // Key(alias) -> index
}

// NewSkillCatalog builds a catalog from skills in catalog order. It returns a
// *CatalogError on duplicate names or on an alias that collides with another
// skill's name or alias.
func NewSkillCatalog(skills []types.CanonicalSkill) (*SkillCatalog, error) {
	c := &SkillCatalog{
		skills:  make([]types.CanonicalSkill, 0, len(skills)),
		byName:  make(map[string]int, len(skills)),
		byAlias: make(map[string]int),
	}

	for _, s := range skills {
		key := Key(s.Name)
		if key == "" {
			return nil, &CatalogError{Catalog: NameSkills, Message: "skill with empty name"}
		}
		if s.Category == "" {
			return nil, &CatalogError{Catalog: NameSkills, Message: "skill " + s.Name + " has no category"}
		}
		if i, ok := c.byName[key]; ok {
			return nil, &CatalogError{
				Catalog: NameSkills,
				Message: "duplicate skill name " + s.Name + " (already defined as " + c.skills[i].Name + ")",
			}
		}
		c.byName[key] = len(c.skills)

		entry := s
		entry.Aliases = append([]string(nil), s.Aliases...)
		c.skills = append(c.skills, entry)
	}

	// Aliases are checked after all names are known so that an alias may not
	// shadow a skill defined later in the file either.
	for i, s := range c.skills {
		for _, alias := range s.Aliases {
			key := Key(alias)
			if key == "" {
				return nil, &CatalogError{Catalog: NameSkills, Message: "empty alias on skill " + s.Name}
			}
			if j, ok := c.byName[key]; ok && j != i {
				return nil, &CatalogError{
					Catalog: NameSkills,
					Message: "alias " + alias + " of " + s.Name + " collides with skill name " + c.skills[j].Name,
				}
			}
			if j, ok := c.byAlias[key]; ok && j != i {
				return nil, &CatalogError{
					Catalog: NameSkills,
					Message: "alias " + alias + " is claimed by both " + c.skills[j].Name + " and " + s.Name,
				}
			}
			c.byAlias[key] = i
		}
	}

	return c, nil
}

// Len returns the number of skills.
func (c *SkillCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.skills)
}

// All returns a copy of the skills in catalog order.
func (c *SkillCatalog) All() []types.CanonicalSkill {
	if c == nil {
		return nil
	}
	out := make([]types.CanonicalSkill, len(c.skills))
	copy(out, c.skills)
	return out
}

// At returns the skill at catalog position i.
func (c *SkillCatalog) At(i int) types.CanonicalSkill {
	return c.skills[i]
}

// ByName looks up a skill by exact canonical name (case-insensitive).
func (c *SkillCatalog) ByName(name string) (types.CanonicalSkill, bool) {
	if c == nil {
		return types.CanonicalSkill{}, false
	}
	i, ok := c.byName[Key(name)]
	if !ok {
		return types.CanonicalSkill{}, false
	}
	return c.skills[i], true
}

// ByAlias looks up a skill by one of its aliases (case-insensitive).
func (c *SkillCatalog) ByAlias(alias string) (types.CanonicalSkill, bool) {
	if c == nil {
		return types.CanonicalSkill{}, false
	}
	i, ok := c.byAlias[Key(alias)]
	if !ok {
		return types.CanonicalSkill{}, false
	}
	return c.skills[i], true
}

// Categories returns the distinct categories in first-seen catalog order.
func (c *SkillCatalog) Categories() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, s := range c.skills {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	return out
}

// JobCatalog is an ordered list of job-role definitions.
type JobCatalog struct {
	roles []types.JobRoleDefinition
}

// NewJobCatalog builds a job catalog. Every required skill must be an exact
// canonical name in skills and every critical skill must also be required;
// role IDs must be unique and levels must be on the ladder.
func NewJobCatalog(roles []types.JobRoleDefinition, skills *SkillCatalog) (*JobCatalog, error) {
	c := &JobCatalog{roles: make([]types.JobRoleDefinition, 0, len(roles))}
	ids := make(map[string]bool, len(roles))

	for _, r := range roles {
		if r.ID == "" || r.Title == "" {
			return nil, &CatalogError{Catalog: NameJobRoles, Message: "role with empty id or title"}
		}
		if ids[r.ID] {
			return nil, &CatalogError{Catalog: NameJobRoles, Message: "duplicate role id " + r.ID}
		}
		ids[r.ID] = true

		if r.ExperienceLevel.Rank() < 0 {
			return nil, &CatalogError{
				Catalog: NameJobRoles,
				Message: "role " + r.ID + " has unknown experience level " + string(r.ExperienceLevel),
			}
		}

		for _, name := range r.RequiredSkills {
			s, ok := skills.ByName(name)
			if !ok || s.Name != name {
				return nil, &CatalogError{
					Catalog: NameJobRoles,
					Message: "role " + r.ID + " requires unknown skill " + name,
				}
			}
		}

		for _, name := range r.CriticalSkills {
			if !containsString(r.RequiredSkills, name) {
				return nil, &CatalogError{
					Catalog: NameJobRoles,
					Message: "role " + r.ID + " marks " + name + " critical but does not require it",
				}
			}
		}

		entry := r
		entry.RequiredSkills = append([]string(nil), r.RequiredSkills...)
		entry.CriticalSkills = append([]string(nil), r.CriticalSkills...)
		entry.Keywords = append([]string(nil), r.Keywords...)
		c.roles = append(c.roles, entry)
	}

	return c, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Len returns the number of roles.
func (c *JobCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.roles)
}

// All returns a copy of the roles in catalog order.
func (c *JobCatalog) All() []types.JobRoleDefinition {
	if c == nil {
		return nil
	}
	out := make([]types.JobRoleDefinition, len(c.roles))
	copy(out, c.roles)
	return out
}

// RequiredBy returns the set of skill names required by at least one role.
func (c *JobCatalog) RequiredBy() map[string]bool {
	out := make(map[string]bool)
	if c == nil {
		return out
	}
	for _, r := range c.roles {
		for _, s := range r.RequiredSkills {
			out[s] = true
		}
	}
	return out
}

// Domain is an industry domain and the keywords that indicate it.
type Domain struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// DomainCatalog is an ordered list of domains.
type DomainCatalog struct {
	domains []Domain
}

// NewDomainCatalog builds a domain catalog. Names must be unique and every
// domain needs at least one keyword.
func NewDomainCatalog(domains []Domain) (*DomainCatalog, error) {
	c := &DomainCatalog{domains: make([]Domain, 0, len(domains))}
	names := make(map[string]bool, len(domains))

	for _, d := range domains {
		if d.Name == "" {
			return nil, &CatalogError{Catalog: NameDomains, Message: "domain with empty name"}
		}
		if names[d.Name] {
			return nil, &CatalogError{Catalog: NameDomains, Message: "duplicate domain " + d.Name}
		}
		names[d.Name] = true
		if len(d.Keywords) == 0 {
			return nil, &CatalogError{Catalog: NameDomains, Message: "domain " + d.Name + " has no keywords"}
		}
		c.domains = append(c.domains, Domain{Name: d.Name, Keywords: append([]string(nil), d.Keywords...)})
	}

	return c, nil
}

// All returns a copy of the domains in catalog order.
func (c *DomainCatalog) All() []Domain {
	if c == nil {
		return nil
	}
	out := make([]Domain, len(c.domains))
	copy(out, c.domains)
	return out
}

// Set bundles the three catalogs an engine needs.
type Set struct {
	Skills  *SkillCatalog
	Jobs    *JobCatalog
	Domains *DomainCatalog
}
