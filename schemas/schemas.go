// Package schemas holds the JSON Schema documents for catalogs and analysis output.
package schemas

import "embed"

// Schema file names.
const (
	SkillCatalog   = "skill_catalog.schema.json"
	JobCatalog     = "job_catalog.schema.json"
	DomainCatalog  = "domain_catalog.schema.json"
	AnalysisResult = "analysis_result.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
