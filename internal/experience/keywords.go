package experience

// leadershipKeywords indicate people or project leadership in a title or description.
var leadershipKeywords = []string{
	"led", "managed", "mentored", "directed", "headed", "oversaw",
	"supervised", "coordinated", "spearheaded", "championed", "built team",
}

// Seniority indicators in role titles.
var (
	seniorKeywords = []string{"senior", "sr", "lead", "principal", "staff", "head", "director", "vp", "chief"}
	juniorKeywords = []string{"junior", "jr", "associate", "entry", "intern", "trainee"}
)

// roleKeywords maps a role specialization to its indicators, checked in order.
var roleKeywords = []struct {
	role     string
	keywords []string
}{
	{"developer", []string{"developer", "engineer", "programmer", "coder"}},
	{"designer", []string{"designer", "ui", "ux", "creative"}},
	{"analyst", []string{"analyst", "analytics", "insights"}},
	{"manager", []string{"manager", "lead", "head", "director", "vp"}},
	{"architect", []string{"architect", "principal", "staff"}},
	{"consultant", []string{"consultant", "advisor"}},
	{"researcher", []string{"researcher", "scientist", "research"}},
	{"administrator", []string{"administrator", "admin", "operations"}},
}

const roleGeneral = "general"

// Title levels reported in the career progression.
const (
	titleSenior = "senior"
	titleMid    = "mid"
	titleJunior = "junior"
)
