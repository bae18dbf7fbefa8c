package normalize

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Technology extraction: scans combined title+description text and returns
// the sorted, deduplicated set of recognized technology names.
//
// Two matching modes:
//   - generic tokens: word-boundary substring search against a fixed
//     vocabulary, with a casing override table for the emitted label
//   - ambiguous tokens (single letters, common English words, currency
//     collisions): a registry of contextual phrase patterns, optionally with
//     a negative filter that suppresses the token even when a phrase matched

// genericVocabulary holds tokens safe to match on word boundaries alone.
// Tokens that collide with ordinary English ("go", "express") or currency
// codes ("php") live in ambiguousTokens instead.
var genericVocabulary = []string{
	// Programming languages
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "kotlin",
	// Web technologies
	"html", "css", "angular", "vue", "node.js", "django", "flask", "spring",
	"laravel", "html5", "css3",
	// Databases and data technologies
	"sql", "mysql", "postgresql", "mongodb", "redis", "elasticsearch",
	"sqlite", "oracle", "sql server", "nosql", "hadoop", "spark", "etl",
	"databricks",
	// Cloud and DevOps
	"azure", "gcp", "google cloud", "docker", "kubernetes", "jenkins",
	"terraform", "ansible", "devops",
	// Data and analytics
	"pandas", "numpy", "tensorflow", "pytorch", "scikit-learn", "tableau",
	"power bi", "stata",
	// Mobile
	"android", "react native", "flutter", "xamarin",
	// Marketing tools
	"google analytics", "facebook ads", "google ads", "hubspot", "salesforce",
	"mailchimp", "hootsuite",
	// Business tools
	"jira", "confluence", "slack", "trello", "asana", "notion", "linux",
	// Office tooling
	"vba", "power query", "ms office", "microsoft office", "macros",
	"excel macros",
}

// upperLabels always emit as all-caps acronyms.
var upperLabels = map[string]bool{
	"sql":   true,
	"html":  true,
	"css":   true,
	"etl":   true,
	"html5": true,
	"css3":  true,
	"vba":   true,
	"gcp":   true,
}

// brandLabels carry a fixed canonical casing that neither upper- nor
// title-casing produces.
var brandLabels = map[string]string{
	"node.js":     "Node.js",
	"mongodb":     "MongoDB",
	"postgresql":  "PostgreSQL",
	"mysql":       "MySQL",
	"javascript":  "JavaScript",
	"typescript":  "TypeScript",
	"power bi":    "Power BI",
	"power query": "Power Query",
	"nosql":       "NoSQL",
	"pytorch":     "PyTorch",
	"tensorflow":  "TensorFlow",
	"numpy":       "NumPy",
}

// ambiguousToken requires one of its contextual phrase patterns to match,
// and is suppressed outright when the negative filter matches.
type ambiguousToken struct {
	label    string
	patterns []*regexp.Regexp
	negative *regexp.Regexp
}

var genericPatterns = compileGenericPatterns()

var ambiguousTokens = []ambiguousToken{
	{
		label: "R",
		patterns: compileAll(
			`\br\s+programming\b`, `\br\s+language\b`, `\br\s+studio\b`, `\brstudio\b`,
			`\br\s+statistical\b`, `\bstatistical\s+r\b`, `\busing\s+r\b`, `\bwith\s+r\b`,
			`\bin\s+r\b`, `\br\s+software\b`, `\br\s+package\b`, `\br\s+script\b`,
			`\br\s+code\b`, `\br\s+analysis\b`, `\bknowledge\s+of\s+r\b`,
			`\bexperience\s+with\s+r\b`, `\bproficient\s+in\s+r\b`,
			`\br\s+and\s+python\b`, `\bpython\s+and\s+r\b`, `\br\s+or\s+python\b`,
			`\bpython\s+or\s+r\b`, `\br\s*[,/]\s*python\b`, `\bpython\s*[,/]\s*r\b`,
		),
	},
	{
		label: "Excel",
		patterns: compileAll(
			`\bmicrosoft\s+excel\b`, `\bms\s+excel\b`, `\bexcel\s+spreadsheet\b`,
			`\bexcel\s+workbook\b`, `\bexcel\s+formula\b`, `\bexcel\s+macro\b`,
			`\bexcel\s+pivot\b`, `\bexcel\s+chart\b`, `\bexcel\s+data\b`,
			`\bexcel\s+analysis\b`, `\bexcel\s+modeling\b`, `\bexcel\s+reporting\b`,
			`\busing\s+excel\b`, `\bwith\s+excel\b`, `\bin\s+excel\b`,
			`\bknowledge\s+of\s+excel\b`, `\bexperience\s+with\s+excel\b`,
			`\bproficient\s+in\s+excel\b`, `\badvanced\s+excel\b`, `\bbasic\s+excel\b`,
			`\bintermediate\s+excel\b`, `\bexcel\s+skills\b`, `\bexcel\s+expert\b`,
		),
	},
	{
		label: "Go",
		patterns: compileAll(
			`\bgo\s+programming\b`, `\bgo\s+language\b`, `\bgo\s+developer\b`,
			`\bgo\s+engineer\b`, `\bgolang\b`, `\busing\s+go\b`, `\bwith\s+go\b`,
			`\bin\s+go\b`, `\bgo\s+code\b`, `\bgo\s+application\b`, `\bgo\s+service\b`,
			`\bknowledge\s+of\s+go\b`, `\bexperience\s+with\s+go\b`, `\bproficient\s+in\s+go\b`,
			`\bgo\s+and\s+python\b`, `\bpython\s+and\s+go\b`, `\bgo\s+or\s+python\b`,
			`\bpython\s+or\s+go\b`, `\bgo\s*[,/]\s*python\b`, `\bpython\s*[,/]\s*go\b`,
		),
	},
	{
		label: "PHP",
		patterns: compileAll(
			`\bphp\s+(developer|programmer|programming|development|experience|framework|scripting)\b`,
			`\b(using|with|in)\s+php\b`,
			`\bphp\s*[,/]`, `[,/]\s*php\b`,
			`\bphp\s+(and|or)\s+(laravel|mysql|javascript|python)\b`,
		),
		// currency phrasing: PHP followed by an amount, or a budget word
		// within a short window of the mention
		negative: compile(`\bphp\s*[\d₱]|\bphp\b.{0,40}\b(salary|budget|cost)\b|\b(salary|budget|cost)\b.{0,40}\bphp\b`),
	},
	{
		label: "SAP",
		patterns: compileAll(
			`\bsap\s+(consultant|fico|hana|erp|abap|basis|experience|modules?|implementation|successfactors)\b`,
			`\b(using|with|in)\s+sap\b`,
			`\bsap\s*[,/]`, `[,/]\s*sap\b`,
		),
		negative: compile(`\basap\b`),
	},
	{
		label: "AWS",
		patterns: compileAll(
			`\baws\s+(cloud|services?|certified|certification|experience|infrastructure|lambda|ec2|s3|glue|redshift)\b`,
			`\bamazon\s+web\s+services\b`,
			`\b(using|with|on|in)\s+aws\b`,
			`\baws\s*[,/]`, `[,/]\s*aws\b`,
		),
	},
	{
		label: "iOS",
		patterns: compileAll(
			`\bios\s+(developer|development|engineer|app|apps|application|applications|sdk|platform)\b`,
			`\b(native|mobile)\s+ios\b`,
			`\bios\s*[,/]`, `[,/]\s*ios\b`,
			`\bandroid\s+(and|or|/)\s*ios\b`, `\bios\s+(and|or|/)\s*android\b`,
		),
	},
	{
		label: "Swift",
		patterns: compileAll(
			`\bswift\s+(developer|programming|development|language|experience)\b`,
			`\bswiftui\b`,
			`\b(ios|xcode|objective-c).{0,40}\bswift\b`, `\bswift\b.{0,40}(ios|xcode|objective-c)\b`,
		),
		negative: compile(`\bswift\s+(code|payments?|transfers?)\b`),
	},
	{
		label: "Scala",
		patterns: compileAll(
			`\bscala\s+(developer|programming|development|experience|engineer)\b`,
			`\b(using|with|in)\s+scala\b`,
			`\bscala\s*[,/]`, `[,/]\s*scala\b`,
			`\b(spark|kafka|akka)\b.{0,40}\bscala\b`,
		),
	},
	{
		label: "Rust",
		patterns: compileAll(
			`\brust\s+(developer|programming|development|experience|engineer|lang)\b`,
			`\b(using|with|in)\s+rust\b`,
			`\brust\s*[,/]`, `[,/]\s*rust\b`,
		),
	},
	{
		label: "React",
		patterns: compileAll(
			`\breact\.?js\b`,
			`\breact\s+(developer|development|experience|components?|framework|hooks?)\b`,
			`\b(using|with|in)\s+react\b`,
			`\breact\s*[,/]`, `[,/]\s*react\b`,
			`\b(angular|vue)\b.{0,40}\breact\b`, `\breact\b.{0,40}(angular|vue)\b`,
		),
	},
	{
		label: "Express",
		patterns: compileAll(
			`\bexpress\.?js\b`,
			`\bexpress\s+(framework|server|api|backend)\b`,
			`\bnode\.?js\b.{0,60}\bexpress\b`, `\bexpress\b.{0,60}node\.?js\b`,
			`\b(mern|mean)\s+stack\b`,
		),
	},
	{
		label: "SSIS",
		patterns: compileAll(
			`\bssis\s+(packages?|development|experience|etl)\b`,
			`\b(ssrs|ssas|sql\s+server|etl)\b.{0,60}\bssis\b`, `\bssis\b.{0,60}(ssrs|ssas|sql\s+server|etl)\b`,
			`\bssis\s*[,/]`, `[,/]\s*ssis\b`,
		),
	},
}

var techTitleCaser = cases.Title(language.English)

// Technologies returns the comma-joined, lexicographically sorted set of
// recognized technology labels, or "" when nothing matched. Running it twice
// on the same text yields the same result.
func Technologies(text string) string {
	lower := strings.ToLower(text)

	found := make(map[string]bool)

	for i, token := range genericVocabulary {
		if genericPatterns[i].MatchString(lower) {
			found[emitLabel(token)] = true
		}
	}

	for _, tok := range ambiguousTokens {
		if tok.negative != nil && tok.negative.MatchString(lower) {
			continue
		}
		for _, p := range tok.patterns {
			if p.MatchString(lower) {
				found[tok.label] = true
				break
			}
		}
	}

	if len(found) == 0 {
		return ""
	}

	labels := make([]string, 0, len(found))
	for label := range found {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	return strings.Join(labels, ", ")
}

func emitLabel(token string) string {
	if upperLabels[token] {
		return strings.ToUpper(token)
	}
	if brand, ok := brandLabels[token]; ok {
		return brand
	}
	return techTitleCaser.String(token)
}

// compileGenericPatterns builds one word-boundary pattern per vocabulary
// token. RE2 \b does not sit next to non-word characters ("c++", "c#"), so
// the boundary is only anchored on sides that start or end with a word rune.
func compileGenericPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(genericVocabulary))
	for i, token := range genericVocabulary {
		expr := regexp.QuoteMeta(token)
		if isWordRune(rune(token[0])) {
			expr = `\b` + expr
		}
		if isWordRune(rune(token[len(token)-1])) {
			expr = expr + `\b`
		}
		patterns[i] = regexp.MustCompile(expr)
	}
	return patterns
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func compile(expr string) *regexp.Regexp {
	return regexp.MustCompile(expr)
}

func compileAll(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		patterns[i] = regexp.MustCompile(expr)
	}
	return patterns
}
