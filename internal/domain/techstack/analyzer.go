// Package techstack detects the technologies a repository uses from file
// names, file contents, and dependency manifests, and checks them against
// hackathon technology requirements.
package techstack

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Report lists every technology detected in a repository, grouped by kind.
type Report struct {
	DetectedTechnologies []string       `json:"detected_technologies"`
	PrimaryLanguages     []string       `json:"primary_languages"`
	Frameworks           []string       `json:"frameworks"`
	DatabaseTechnologies []string       `json:"database_technologies"`
	CloudServices        []string       `json:"cloud_services"`
	DevOpsTools          []string       `json:"devops_tools"`
	TechnologyDiversity  float64        `json:"technology_diversity"`
	TechFileCounts       map[string]int `json:"tech_file_counts"`
	MissingRequired      []string       `json:"missing_required"`
	ForbiddenUsed        []string       `json:"forbidden_used"`
}

// Compliance is the outcome of checking detected technologies against the
// hackathon's required and disallowed lists.
type Compliance struct {
	MissingRequired []string `json:"missing_required"`
	ForbiddenUsed   []string `json:"forbidden_used"`
	ComplianceScore float64  `json:"compliance_score"`
}

func compileSet(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile("(?i)"+p))
	}
	return out
}

var techMarkers = map[string][]*regexp.Regexp{
	"python":          compileSet(`\.py$`, `requirements\.txt$`, `setup\.py$`, `Pipfile$`, `pyproject\.toml$`),
	"javascript":      compileSet(`\.js$`, `package\.json$`, `yarn\.lock$`, `webpack\.config\.js$`),
	"typescript":      compileSet(`\.ts$`, `\.tsx$`, `tsconfig\.json$`),
	"react":           compileSet(`\.jsx$`, `\.tsx$`, `react`, `import\s+React`),
	"vue":             compileSet(`\.vue$`, `vue\.config\.js$`),
	"angular":         compileSet(`angular\.json$`, `\.component\.ts$`),
	"node":            compileSet(`package\.json$`, `node_modules`, `express`),
	"java":            compileSet(`\.java$`, `pom\.xml$`, `build\.gradle$`),
	"kotlin":          compileSet(`\.kt$`, `\.kts$`),
	"swift":           compileSet(`\.swift$`, `Package\.swift$`),
	"ruby":            compileSet(`\.rb$`, `Gemfile$`, `\.gemspec$`),
	"php":             compileSet(`\.php$`, `composer\.json$`),
	"go":              compileSet(`\.go$`, `go\.mod$`),
	"rust":            compileSet(`\.rs$`, `Cargo\.toml$`),
	"c":               compileSet(`\.c$`, `\.h$`),
	"cpp":             compileSet(`\.cpp$`, `\.hpp$`, `\.cc$`),
	"csharp":          compileSet(`\.cs$`, `\.csproj$`, `\.sln$`),
	"flutter":         compileSet(`\.dart$`, `pubspec\.yaml$`),
	"django":          compileSet(`settings\.py$`, `urls\.py$`, `models\.py$`, `views\.py$`),
	"unity":           compileSet(`\.unity$`, `\.prefab$`, `\.mat$`),
	"docker":          compileSet(`Dockerfile`, `docker-compose\.yml$`),
	"kubernetes":      compileSet(`kubectl`),
	"html":            compileSet(`\.html$`, `\.htm$`),
	"css":             compileSet(`\.css$`, `\.scss$`, `\.sass$`, `\.less$`),
	"tailwind":        compileSet(`tailwind\.config\.js$`),
	"jquery":          compileSet(`jquery`),
	"graphql":         compileSet(`\.graphql$`, `\.gql$`, `apollo`),
	"sql":             compileSet(`\.sql$`),
	"mongodb":         compileSet(`mongodb`, `mongoose`),
	"postgresql":      compileSet(`postgres`, `psql`, `pg_`),
	"mysql":           compileSet(`mysql`, `MariaDB`),
	"redis":           compileSet(`redis`),
	"firebase":        compileSet(`firebase`, `firestore`),
	"machinelearning": compileSet(`sklearn`, `scikit`, `pandas`, `numpy`, `matplotlib`, `keras`),
}

var contentSignatures = map[string][]*regexp.Regexp{
	"react":      compileSet(`import\s+React`, `from\s+['"](react|react-dom)`, `React\.(Component|createClass|useState|useEffect)`),
	"vue":        compileSet(`import\s+Vue`, `new\s+Vue\(`, `createApp\(`),
	"angular":    compileSet(`@angular`, `@Component`, `NgModule`),
	"django":     compileSet(`from\s+django`, `urlpatterns`, `INSTALLED_APPS`),
	"flask":      compileSet(`from\s+flask`, `Flask\(__name__\)`),
	"fastapi":    compileSet(`from\s+fastapi`, `FastAPI\(`),
	"spring":     compileSet(`@SpringBootApplication`, `@RestController`),
	"express":    compileSet(`express\(\)`, `app\.get\(`, `app\.post\(`),
	"redux":      compileSet(`createStore`, `useSelector`, `useDispatch`, `combineReducers`),
	"tensorflow": compileSet(`import\s+tensorflow`, `tf\.`),
	"pytorch":    compileSet(`import\s+torch`, `torch\.nn`),
	"mongodb":    compileSet(`mongoose`, `MongoClient`, `mongodb://`),
	"graphql":    compileSet("gql`", `ApolloClient`, `useQuery`),
}

var (
	languageTechs  = toSet("python", "javascript", "typescript", "java", "kotlin", "swift", "ruby", "php", "go", "rust", "c", "cpp", "csharp")
	frameworkTechs = toSet("react", "vue", "angular", "django", "flask", "fastapi", "spring", "express", "flutter", "unity")
	databaseTechs  = toSet("mongodb", "postgresql", "mysql", "redis", "sqlite", "firebase")
	cloudTechs     = toSet("aws", "azure", "gcp", "firebase", "heroku", "netlify", "vercel")
	devopsTechs    = toSet("docker", "kubernetes", "github", "gitlab", "jenkins", "travis", "circleci")
)

func toSet(items ...string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[item] = true
	}
	return out
}

var walkSkipDirs = map[string]bool{".git": true, "node_modules": true, "__pycache__": true}

// AnalyzeRepo walks a checked-out repository and reports every technology
// it can identify. Dotfiles and dependency caches are skipped; unreadable
// files only lose their content signals, not their filename signals.
func AnalyzeRepo(root string) Report {
	occurrences := map[string]int{}
	contentTechs := map[string]bool{}

	filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if walkSkipDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") && name != ".env" {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		for tech, patterns := range techMarkers {
			for _, re := range patterns {
				if re.MatchString(name) || re.MatchString(rel) {
					occurrences[tech]++
					break
				}
			}
		}

		analyzer := manifestAnalyzer(name)
		if analyzer == nil {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		content := string(data)
		for _, tech := range analyzer(content) {
			contentTechs[tech] = true
		}
		for tech, patterns := range contentSignatures {
			for _, re := range patterns {
				if re.MatchString(content) {
					occurrences[tech]++
					break
				}
			}
		}
		return nil
	})

	for tech := range contentTechs {
		occurrences[tech]++
	}

	report := Report{
		TechFileCounts:       occurrences,
		DetectedTechnologies: []string{},
		PrimaryLanguages:     []string{},
		Frameworks:           []string{},
		DatabaseTechnologies: []string{},
		CloudServices:        []string{},
		DevOpsTools:          []string{},
		MissingRequired:      []string{},
		ForbiddenUsed:        []string{},
	}

	for tech, count := range occurrences {
		if count > 0 {
			report.DetectedTechnologies = append(report.DetectedTechnologies, tech)
		}
	}
	sort.Strings(report.DetectedTechnologies)

	for _, tech := range report.DetectedTechnologies {
		if languageTechs[tech] {
			report.PrimaryLanguages = append(report.PrimaryLanguages, tech)
		}
		if frameworkTechs[tech] {
			report.Frameworks = append(report.Frameworks, tech)
		}
		if databaseTechs[tech] {
			report.DatabaseTechnologies = append(report.DatabaseTechnologies, tech)
		}
		if cloudTechs[tech] {
			report.CloudServices = append(report.CloudServices, tech)
		}
		if devopsTechs[tech] {
			report.DevOpsTools = append(report.DevOpsTools, tech)
		}
	}

	report.TechnologyDiversity = diversity(len(report.DetectedTechnologies))
	return report
}

func diversity(distinct int) float64 {
	d := float64(distinct) / 10
	if d > 1 {
		return 1
	}
	return d
}

// CheckRequirements compares detected technologies against the required and
// disallowed lists. The score starts at 1.0, scales down by the fraction of
// required technologies missing, then by the fraction of the disallowed
// list actually used.
func CheckRequirements(detected, required, disallowed []string) Compliance {
	detectedSet := toSet(detected...)

	result := Compliance{
		MissingRequired: []string{},
		ForbiddenUsed:   []string{},
		ComplianceScore: 1.0,
	}

	for _, tech := range required {
		if !detectedSet[tech] {
			result.MissingRequired = append(result.MissingRequired, tech)
		}
	}
	for _, tech := range disallowed {
		if detectedSet[tech] {
			result.ForbiddenUsed = append(result.ForbiddenUsed, tech)
		}
	}
	sort.Strings(result.MissingRequired)
	sort.Strings(result.ForbiddenUsed)

	if len(required) > 0 {
		result.ComplianceScore *= float64(len(required)-len(result.MissingRequired)) / float64(len(required))
	}
	if len(disallowed) > 0 && len(result.ForbiddenUsed) > 0 {
		result.ComplianceScore *= 1 - float64(len(result.ForbiddenUsed))/float64(len(disallowed))
	}

	return result
}
