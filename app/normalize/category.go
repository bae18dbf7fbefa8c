package normalize

import (
	"strings"
)

// Category labels for the IT job market taxonomy.
const (
	CategoryDevOps      = "DevOps and Platform Engineering"
	CategoryQA          = "Quality Assurance and Testing"
	CategoryDatabase    = "Database Administration"
	CategoryBusiness    = "Business and Systems Analysis"
	CategoryCloud       = "Cloud Computing"
	CategorySecurity    = "Cybersecurity"
	CategorySupport     = "IT Support and Helpdesk"
	CategoryDataScience = "Data Science and Analysis"
	CategorySoftware    = "Software, Web, and Mobile Development"
	CategorySysadmin    = "Network and Systems Administration"
	CategoryManagement  = "IT Management and Operations"
	CategoryOtherIT     = "Other IT"
)

type categoryRule struct {
	label    string
	keywords []string
}

// categoryRules are evaluated in this exact order, first hit wins. Several
// keyword lists overlap ("analyst" appears under both Data Science and
// Business Analysis; "manager" under Management); the order is the only
// tie-break, so reorder nothing.
var categoryRules = []categoryRule{
	{CategoryDevOps, []string{
		"devops", "platform engineer", "site reliability", "sre",
		"infrastructure engineer", "terraform", "kubernetes", "docker",
		"ci/cd", "pipeline", "release engineer", "infrastructure automation",
		"deployment engineer", "platform architect",
	}},
	{CategoryQA, []string{
		"qa engineer", "quality assurance", "test", "tester", "qa analyst",
		"testing", "automation tester", "test planning", "functional test",
		"quality", "test automation", "qa specialist", "qa automation", "qa",
	}},
	{CategoryDatabase, []string{
		"database administrator", "dba", "database", "sql administrator",
		"metadata", "db administrator", "sql server", "migration",
		"extract transform", "data architect", "data administrator",
	}},
	{CategoryBusiness, []string{
		"business analyst", "systems analyst", "functional analyst",
		"process analyst", "business systems analyst", "requirements analyst",
		"system analyst", "functional", "business systems",
		"process improvement", "presales", "payroll", "sap", "enterprise",
		"sap consultant", "sap fico", "sap associate", "sap administrator",
		"technical consultant",
	}},
	{CategoryCloud, []string{
		"cloud", "cloud specialist", "aws", "azure", "gcp",
		"solutions architect",
	}},
	{CategorySecurity, []string{
		"security", "security officer", "cybersecurity", "penetration",
		"application security", "infosec", "cyber security", "cyber",
		"it security",
	}},
	{CategorySupport, []string{
		"it support", "technical support", "help desk", "desktop support",
		"support", "support analyst", "it technician", "computer technician",
		"user productivity", "end user", "contact center", "field support",
		"helpdesk", "technical", "support lead", "deskside support",
		"it staff", "it service", "it desk", "service desk",
		"computer operator", "assistant", "information technology",
		"information staff", "technology staff", "it intern", "it specialist",
	}},
	{CategoryDataScience, []string{
		"data scientist", "data analyst", "data eng", "business intelligence",
		"machine learning", "analytics", "bi analyst", "reporting analyst",
		"data conversion", "ml", "web analyst", "sql", "data visualization",
		"analyst", "data annotator", "data specialist", "powerbi",
		"data workflow analyst", "data strategy", "sql analyst",
		"bi reporting",
	}},
	{CategorySoftware, []string{
		"web developer", "frontend developer", "backend developer",
		"full stack", "fullstack", "angular developer", "react developer",
		"vue", "nodejs", "web engineer", "wordpress", "ui developer",
		"web designer", "frontend engineer", "ui/ux developer",
		"javascript developer", "html", "css developer", "java enterprise",
		"java", "ui/ux", "ui", "ux", "next.js", "mobile developer",
		"android developer", "app developer", "android", "mobile app",
		"cobol", "software developer", "software engineer", "programmer",
		"application developer", "java developer", "python developer",
		"golang developer", "developer", "engineer", ".net developer",
		"php developer", "c++ developer", "technical developer",
		"backend engineer", "application engineer", "systems developer",
		"solutions engineer", "solutions", "product designer",
		"building tool", "website", "website administrator",
		"software development", "software architect", "ai & automation",
		"ai architect",
	}},
	{CategorySysadmin, []string{
		"system administrator", "systems administrator", "sysadmin",
		"network administrator", "it administrator", "server administrator",
		"system analyst", "it officer", "system i",
		"infrastructure specialist", "systems engineer", "network engineer",
		"server engineer", "ip telephony", "telephony", "system",
		"technology architecture",
	}},
	{CategoryManagement, []string{
		"it project manager", "project manager", "owner",
		"it strategic business partner", "business partner manager",
		"billing consultant", "technical project manager",
		"business development", "manager", "project management", "itsm",
		"director", "governance", "compliance", "management",
		"it operations", "it project coordinator", "chief technology officer",
		"it supervisor", "chief transformation officer", "it project lead",
		"it project", "it lead", "project administrator", "scrum",
		"enterprise solutions",
	}},
}

var categoryTitleReplacer = strings.NewReplacer("|", " ", "-", " ")

// Category maps a job title to one of the twelve fixed labels. Titles that
// match nothing are still IT-related by the time they reach this pipeline,
// so they fall through to Other IT rather than being rejected.
func Category(title string) string {
	cleaned := categoryTitleReplacer.Replace(strings.ToLower(strings.TrimSpace(title)))

	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(cleaned, keyword) {
				return rule.label
			}
		}
	}

	return CategoryOtherIT
}
