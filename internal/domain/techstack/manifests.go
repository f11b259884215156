package techstack

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

type contentAnalyzer func(content string) []string

// manifestAnalyzer returns the analyzer for a file, dispatching on the full
// name for dependency manifests and on the extension for source files.
func manifestAnalyzer(name string) contentAnalyzer {
	switch name {
	case "package.json":
		return analyzePackageJSON
	case "requirements.txt":
		return analyzeRequirementsTxt
	case "pyproject.toml":
		return analyzePyprojectToml
	case "pom.xml":
		return analyzePomXML
	case "build.gradle", "build.gradle.kts":
		return analyzeGradle
	case "go.mod":
		return analyzeGoMod
	}

	switch {
	case strings.HasSuffix(name, ".py"):
		return analyzePythonSource
	case strings.HasSuffix(name, ".js"), strings.HasSuffix(name, ".jsx"),
		strings.HasSuffix(name, ".ts"), strings.HasSuffix(name, ".tsx"):
		return analyzeJSSource
	case strings.HasSuffix(name, ".java"):
		return analyzeJavaSource
	}
	return nil
}

type importSignal struct {
	re   *regexp.Regexp
	tech string
}

func signals(pairs ...[2]string) []importSignal {
	out := make([]importSignal, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, importSignal{regexp.MustCompile("(?m)" + p[0]), p[1]})
	}
	return out
}

func matchSignals(content string, sigs []importSignal) []string {
	seen := map[string]bool{}
	for _, s := range sigs {
		if s.re.MatchString(content) {
			seen[s.tech] = true
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

var pythonImports = signals(
	[2]string{`import\s+flask`, "flask"},
	[2]string{`from\s+flask`, "flask"},
	[2]string{`import\s+django`, "django"},
	[2]string{`from\s+django`, "django"},
	[2]string{`import\s+fastapi`, "fastapi"},
	[2]string{`from\s+fastapi`, "fastapi"},
	[2]string{`import\s+numpy`, "numpy"},
	[2]string{`import\s+pandas`, "pandas"},
	[2]string{`import\s+tensorflow`, "tensorflow"},
	[2]string{`import\s+torch`, "pytorch"},
	[2]string{`import\s+sklearn`, "scikit-learn"},
	[2]string{`from\s+sklearn`, "scikit-learn"},
	[2]string{`import\s+matplotlib`, "matplotlib"},
	[2]string{`import\s+pymongo`, "mongodb"},
	[2]string{`import\s+sqlalchemy`, "sqlalchemy"},
	[2]string{`import\s+psycopg2`, "postgresql"},
	[2]string{`import\s+mysql`, "mysql"},
	[2]string{`import\s+boto3`, "aws"},
	[2]string{`import\s+firebase_admin`, "firebase"},
	[2]string{`import\s+keras`, "keras"},
)

func analyzePythonSource(content string) []string {
	return matchSignals(content, pythonImports)
}

var jsImports = signals(
	[2]string{`import\s+.*\s+from\s+['"]react`, "react"},
	[2]string{`import\s+.*\s+from\s+['"]vue`, "vue"},
	[2]string{`import\s+.*\s+from\s+['"]@angular`, "angular"},
	[2]string{`import\s+.*\s+from\s+['"]express`, "express"},
	[2]string{`import\s+.*\s+from\s+['"]mongoose`, "mongodb"},
	[2]string{`import\s+.*\s+from\s+['"]sequelize`, "sql"},
	[2]string{`import\s+.*\s+from\s+['"]pg\b`, "postgresql"},
	[2]string{`import\s+.*\s+from\s+['"]mysql`, "mysql"},
	[2]string{`import\s+.*\s+from\s+['"]firebase`, "firebase"},
	[2]string{`import\s+.*\s+from\s+['"]@aws-sdk`, "aws"},
	[2]string{`import\s+.*\s+from\s+['"]@azure`, "azure"},
	[2]string{`import\s+.*\s+from\s+['"]@google-cloud`, "gcp"},
	[2]string{`import\s+.*\s+from\s+['"]redux`, "redux"},
	[2]string{`import\s+.*\s+from\s+['"]@apollo/client`, "graphql"},
	[2]string{`import\s+.*\s+from\s+['"]axios`, "axios"},
)

func analyzeJSSource(content string) []string {
	return matchSignals(content, jsImports)
}

var javaImports = signals(
	[2]string{`import\s+org\.springframework`, "spring"},
	[2]string{`import\s+javax\.persistence`, "jpa"},
	[2]string{`import\s+java\.sql`, "jdbc"},
	[2]string{`import\s+com\.fasterxml\.jackson`, "jackson"},
	[2]string{`import\s+org\.hibernate`, "hibernate"},
	[2]string{`import\s+com\.google\.firebase`, "firebase"},
	[2]string{`import\s+com\.amazonaws`, "aws"},
	[2]string{`import\s+com\.azure`, "azure"},
	[2]string{`import\s+com\.google\.cloud`, "gcp"},
	[2]string{`import\s+io\.reactivex`, "rxjava"},
	[2]string{`import\s+reactor\.core`, "reactor"},
	[2]string{`import\s+org\.mongodb`, "mongodb"},
)

func analyzeJavaSource(content string) []string {
	return matchSignals(content, javaImports)
}

var packageJSONDeps = map[string]string{
	"react":                 "react",
	"react-dom":             "react",
	"vue":                   "vue",
	"@vue/cli":              "vue",
	"@angular/core":         "angular",
	"express":               "express",
	"koa":                   "koa",
	"next":                  "nextjs",
	"nuxt":                  "nuxtjs",
	"mongoose":              "mongodb",
	"sequelize":             "sql",
	"pg":                    "postgresql",
	"mysql":                 "mysql",
	"sqlite3":               "sqlite",
	"redis":                 "redis",
	"firebase":              "firebase",
	"aws-sdk":               "aws",
	"@azure/core":           "azure",
	"@google-cloud/storage": "gcp",
	"redux":                 "redux",
	"apollo-client":         "graphql",
	"@apollo/client":        "graphql",
	"graphql":               "graphql",
	"tailwindcss":           "tailwind",
	"bootstrap":             "bootstrap",
	"jquery":                "jquery",
	"webpack":               "webpack",
	"jest":                  "jest",
	"mocha":                 "mocha",
	"cypress":               "cypress",
	"electron":              "electron",
	"typescript":            "typescript",
}

func analyzePackageJSON(content string) []string {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return nil
	}

	seen := map[string]bool{}
	check := func(deps map[string]string) {
		for dep := range deps {
			for known, tech := range packageJSONDeps {
				if dep == known || strings.HasPrefix(dep, known+"/") {
					seen[tech] = true
				}
			}
		}
	}
	check(manifest.Dependencies)
	check(manifest.DevDependencies)
	return sortedKeys(seen)
}

var requirementsDeps = map[string]string{
	"flask":          "flask",
	"django":         "django",
	"fastapi":        "fastapi",
	"numpy":          "numpy",
	"pandas":         "pandas",
	"tensorflow":     "tensorflow",
	"torch":          "pytorch",
	"scikit-learn":   "scikit-learn",
	"matplotlib":     "matplotlib",
	"pymongo":        "mongodb",
	"sqlalchemy":     "sqlalchemy",
	"psycopg2":       "postgresql",
	"mysqlclient":    "mysql",
	"boto3":          "aws",
	"firebase-admin": "firebase",
	"google-cloud":   "gcp",
	"azure-":         "azure",
	"pytest":         "pytest",
	"jupyter":        "jupyter",
}

func analyzeRequirementsTxt(content string) []string {
	seen := map[string]bool{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pkg := line
		for _, sep := range []string{"==", ">=", "<="} {
			pkg = strings.SplitN(pkg, sep, 2)[0]
		}
		pkg = strings.TrimSpace(pkg)

		for known, tech := range requirementsDeps {
			if pkg == known || strings.HasPrefix(pkg, known+"-") || (strings.HasSuffix(known, "-") && strings.HasPrefix(pkg, known)) {
				seen[tech] = true
			}
		}
	}
	return sortedKeys(seen)
}

var pyprojectSignals = signals(
	[2]string{`(?i)flask\s*=`, "flask"},
	[2]string{`(?i)django\s*=`, "django"},
	[2]string{`(?i)fastapi\s*=`, "fastapi"},
	[2]string{`(?i)numpy\s*=`, "numpy"},
	[2]string{`(?i)pandas\s*=`, "pandas"},
	[2]string{`(?i)tensorflow\s*=`, "tensorflow"},
	[2]string{`(?i)torch\s*=`, "pytorch"},
	[2]string{`(?i)scikit-learn\s*=`, "scikit-learn"},
	[2]string{`(?i)matplotlib\s*=`, "matplotlib"},
	[2]string{`(?i)pymongo\s*=`, "mongodb"},
	[2]string{`(?i)sqlalchemy\s*=`, "sqlalchemy"},
	[2]string{`(?i)psycopg2\s*=`, "postgresql"},
	[2]string{`(?i)mysqlclient\s*=`, "mysql"},
	[2]string{`(?i)boto3\s*=`, "aws"},
	[2]string{`(?i)firebase-admin\s*=`, "firebase"},
	[2]string{`(?i)google-cloud\s*=`, "gcp"},
	[2]string{`(?i)azure-\w+\s*=`, "azure"},
)

func analyzePyprojectToml(content string) []string {
	return matchSignals(content, pyprojectSignals)
}

var pomSignals = signals(
	[2]string{`(?i)<artifactId>spring-boot</artifactId>`, "spring"},
	[2]string{`(?i)<artifactId>spring-webmvc</artifactId>`, "spring"},
	[2]string{`(?i)<artifactId>hibernate-core</artifactId>`, "hibernate"},
	[2]string{`(?i)<artifactId>mysql-connector-java</artifactId>`, "mysql"},
	[2]string{`(?i)<artifactId>postgresql</artifactId>`, "postgresql"},
	[2]string{`(?i)<artifactId>mongodb-driver</artifactId>`, "mongodb"},
	[2]string{`(?i)<artifactId>aws-java-sdk</artifactId>`, "aws"},
	[2]string{`(?i)<artifactId>azure-sdk</artifactId>`, "azure"},
	[2]string{`(?i)<artifactId>google-cloud</artifactId>`, "gcp"},
	[2]string{`(?i)<artifactId>firebase-admin</artifactId>`, "firebase"},
)

func analyzePomXML(content string) []string {
	return matchSignals(content, pomSignals)
}

var gradleSignals = signals(
	[2]string{`(?i)org\.springframework\.boot`, "spring"},
	[2]string{`(?i)org\.hibernate`, "hibernate"},
	[2]string{`(?i)mysql-connector-java`, "mysql"},
	[2]string{`(?i)org\.postgresql`, "postgresql"},
	[2]string{`(?i)org\.mongodb`, "mongodb"},
	[2]string{`(?i)com\.amazonaws`, "aws"},
	[2]string{`(?i)com\.azure`, "azure"},
	[2]string{`(?i)com\.google\.cloud`, "gcp"},
	[2]string{`(?i)com\.google\.firebase`, "firebase"},
)

func analyzeGradle(content string) []string {
	return matchSignals(content, gradleSignals)
}

var goModDeps = map[string]string{
	"github.com/gin-gonic/gin":          "gin",
	"github.com/labstack/echo":          "echo",
	"github.com/go-chi/chi":             "chi",
	"github.com/lib/pq":                 "postgresql",
	"github.com/jackc/pgx":              "postgresql",
	"go.mongodb.org/mongo-driver":       "mongodb",
	"github.com/go-sql-driver/mysql":    "mysql",
	"github.com/redis/go-redis":         "redis",
	"github.com/go-redis/redis":         "redis",
	"github.com/aws/aws-sdk-go":         "aws",
	"cloud.google.com/go":               "gcp",
	"github.com/Azure/azure-sdk-for-go": "azure",
	"firebase.google.com/go":            "firebase",
	"google.golang.org/grpc":            "grpc",
	"github.com/graphql-go/graphql":     "graphql",
}

func analyzeGoMod(content string) []string {
	seen := map[string]bool{}
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}
		path := fields[0]
		if path == "require" && len(fields) > 1 {
			path = fields[1]
		}
		for prefix, tech := range goModDeps {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				seen[tech] = true
			}
		}
	}
	return sortedKeys(seen)
}
