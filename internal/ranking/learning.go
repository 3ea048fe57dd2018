package ranking

import (
	"github.com/jonathan/resume-intel/internal/textmatch"
	"github.com/jonathan/resume-intel/internal/types"
)

// learningPaths is looked up by folded skill name, then by whole-word
// containment in either direction, in table order.
var learningPaths = []types.LearningPath{
	{Skill: "python", Level: "beginner", TimeEstimate: "2-4 weeks",
		Resources: []string{"Official Python Tutorial", "Codecademy Python", "Real Python"}},
	{Skill: "javascript", Level: "intermediate", TimeEstimate: "4-6 weeks",
		Resources: []string{"MDN Web Docs", "JavaScript.info", "freeCodeCamp"}},
	{Skill: "typescript", Level: "intermediate", TimeEstimate: "2-3 weeks",
		Resources: []string{"TypeScript Handbook", "Total TypeScript", "Type Challenges"}},
	{Skill: "react", Level: "intermediate", TimeEstimate: "3-4 weeks",
		Resources: []string{"Official React Docs", "React Tutorial", "Egghead.io"}},
	{Skill: "node.js", Level: "intermediate", TimeEstimate: "3-4 weeks",
		Resources: []string{"Node.js Learn", "The Node.js Handbook", "Node.js Design Patterns"}},
	{Skill: "sql", Level: "beginner", TimeEstimate: "2-3 weeks",
		Resources: []string{"SQLBolt", "Mode SQL Tutorial", "PostgreSQL Exercises"}},
	{Skill: "machine learning", Level: "advanced", TimeEstimate: "3-6 months",
		Resources: []string{"Coursera Machine Learning", "fast.ai", "Hands-On Machine Learning"}},
	{Skill: "docker", Level: "intermediate", TimeEstimate: "2-3 weeks",
		Resources: []string{"Docker Documentation", "Docker Mastery", "Play with Docker"}},
	{Skill: "kubernetes", Level: "advanced", TimeEstimate: "4-6 weeks",
		Resources: []string{"Kubernetes.io Tutorials", "KubeAcademy", "CKA Preparation"}},
	{Skill: "aws", Level: "intermediate", TimeEstimate: "1-2 months",
		Resources: []string{"AWS Skill Builder", "AWS Cloud Practitioner", "AWS Well-Architected Labs"}},
	{Skill: "project management", Level: "intermediate", TimeEstimate: "2-3 months",
		Resources: []string{"PMP Certification", "CAPM Preparation", "Project Management Fundamentals"}},
	{Skill: "communication", Level: "beginner", TimeEstimate: "1-2 months",
		Resources: []string{"Toastmasters", "Business Communication Courses", "Writing for the Workplace"}},
	{Skill: "leadership", Level: "advanced", TimeEstimate: "3-6 months",
		Resources: []string{"Leadership Workshops", "Executive Coaching", "The Manager's Path"}},
	{Skill: "sales", Level: "beginner", TimeEstimate: "1-2 months",
		Resources: []string{"Sales Training Programs", "Sandler Training", "SPIN Selling"}},
	{Skill: "customer service", Level: "beginner", TimeEstimate: "2-4 weeks",
		Resources: []string{"Customer Service Training", "Zendesk Academy", "Help Desk Certification"}},
	{Skill: "negotiation", Level: "intermediate", TimeEstimate: "1-2 months",
		Resources: []string{"Never Split the Difference", "Harvard PON Courses", "Negotiation Training"}},
	{Skill: "teaching", Level: "intermediate", TimeEstimate: "3-6 months",
		Resources: []string{"Teaching Certification", "Coursera Teaching Courses", "Classroom Management Training"}},
	{Skill: "curriculum development", Level: "intermediate", TimeEstimate: "2-3 months",
		Resources: []string{"Instructional Design Courses", "ADDIE Model", "eLearning Industry"}},
	{Skill: "data analysis", Level: "beginner", TimeEstimate: "2-3 months",
		Resources: []string{"Advanced Excel", "Tableau Training", "Google Data Analytics Certificate"}},
	{Skill: "digital marketing", Level: "beginner", TimeEstimate: "1-2 months",
		Resources: []string{"Google Digital Garage", "HubSpot Academy", "Meta Blueprint"}},
	{Skill: "financial analysis", Level: "intermediate", TimeEstimate: "3-6 months",
		Resources: []string{"Financial Modeling Courses", "CFA Preparation", "Wall Street Prep"}},
	{Skill: "recruiting", Level: "beginner", TimeEstimate: "1-2 months",
		Resources: []string{"SHRM Certification", "LinkedIn Recruiter Training", "Recruiting Software Certifications"}},
	{Skill: "process improvement", Level: "intermediate", TimeEstimate: "2-3 months",
		Resources: []string{"Six Sigma Certification", "Lean Training", "Process Excellence"}},
}

var defaultLearningPath = types.LearningPath{
	Level:        "intermediate",
	TimeEstimate: "2-3 months",
	Resources:    []string{"Online courses", "Industry-specific training", "Professional certifications"},
}

// LearningPathFor suggests a learning path for a skill. The returned path
// carries the skill name as given.
func LearningPathFor(skill string) types.LearningPath {
	key := textmatch.Fold(skill)

	path, found := defaultLearningPath, false
	for _, p := range learningPaths {
		if p.Skill == key {
			path, found = p, true
			break
		}
	}
	if !found && key != "" {
		for _, p := range learningPaths {
			if textmatch.Contains(key, p.Skill) || textmatch.Contains(p.Skill, key) {
				path = p
				break
			}
		}
	}

	path.Skill = skill
	path.Resources = append([]string(nil), path.Resources...)
	return path
}
