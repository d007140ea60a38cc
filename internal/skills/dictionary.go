// Package skills holds the static skill vocabulary used to recognize, normalize and
// categorize skill tokens found in CV text.
package skills

import (
	"regexp"
	"strings"
)

// dictionary is the known-skill vocabulary, lower-cased. Entries containing a space are
// matched as substrings, all others on word boundaries.
var dictionary = []string{
	// Programming languages
	"javascript", "js", "typescript", "ts", "python", "java", "c++", "cpp", "c#", "csharp",
	"ruby", "php", "swift", "kotlin", "go", "golang", "rust", "scala", "r", "matlab",
	"perl", "shell", "bash", "powershell", "objective-c", "dart", "elixir", "haskell",

	// Frontend frameworks and libraries
	"react", "react.js", "reactjs", "vue", "vue.js", "vuejs", "angular", "angularjs",
	"svelte", "ember", "backbone", "jquery", "preact", "solid", "qwik",

	// Frontend technologies
	"html", "html5", "css", "css3", "sass", "scss", "less", "tailwind", "tailwindcss",
	"bootstrap", "material-ui", "mui", "chakra ui", "styled-components", "emotion",

	// Build tools
	"webpack", "vite", "rollup", "parcel", "esbuild", "turbopack", "gulp", "grunt",

	// Meta frameworks
	"next.js", "nextjs", "nuxt", "nuxt.js", "gatsby", "remix", "astro", "sveltekit",

	// State management
	"redux", "mobx", "zustand", "recoil", "jotai", "xstate", "pinia", "vuex",

	// Backend frameworks
	"node.js", "nodejs", "node", "express", "express.js", "fastify", "koa", "hapi",
	"django", "flask", "fastapi", "spring", "spring boot", "asp.net", ".net", "dotnet",
	"laravel", "symfony", "rails", "ruby on rails", "nestjs", "nest.js", "adonis",

	// APIs
	"rest", "rest api", "restful", "graphql", "grpc", "soap", "websocket", "websockets",
	"microservices", "api gateway", "openapi", "swagger",

	// SQL databases
	"sql", "mysql", "postgresql", "postgres", "mariadb", "sqlite", "oracle", "mssql",
	"sql server", "t-sql", "pl/sql",

	// NoSQL databases
	"mongodb", "mongo", "couchdb", "cassandra", "dynamodb", "neo4j", "redis",
	"memcached", "elasticsearch", "elastic", "solr",

	// Cloud platforms
	"aws", "amazon web services", "azure", "microsoft azure", "gcp", "google cloud",
	"heroku", "digitalocean", "linode", "vercel", "netlify", "cloudflare",

	// Cloud services
	"s3", "ec2", "lambda", "rds", "cloudfront", "route53", "sqs", "sns", "cloudwatch",
	"azure functions", "cloud functions", "cloud run", "app engine",

	// DevOps and CI/CD
	"docker", "kubernetes", "k8s", "jenkins", "gitlab ci", "github actions", "circleci",
	"travis ci", "terraform", "ansible", "puppet", "chef", "vagrant", "ci/cd",

	// Version control
	"git", "github", "gitlab", "bitbucket", "svn", "mercurial",

	// Operating systems and servers
	"linux", "unix", "ubuntu", "centos", "debian", "redhat", "windows server",
	"nginx", "apache", "iis", "tomcat",

	// Testing
	"jest", "mocha", "chai", "jasmine", "pytest", "junit", "selenium", "cypress",
	"playwright", "testing library", "vitest", "phpunit", "rspec", "testing",
	"unit testing", "integration testing", "e2e testing", "tdd", "bdd",

	// Mobile
	"react native", "flutter", "ionic", "xamarin", "cordova", "phonegap",
	"android", "ios", "swift ui", "jetpack compose",

	// AI and data science
	"machine learning", "ml", "deep learning", "ai", "artificial intelligence",
	"tensorflow", "pytorch", "keras", "scikit-learn", "pandas", "numpy",
	"data science", "data analysis", "nlp", "computer vision", "opencv",

	// Methodologies
	"agile", "scrum", "kanban", "waterfall", "devops", "lean", "xp", "safe",

	// Security
	"oauth", "oauth2", "jwt", "saml", "ssl", "tls", "security", "cybersecurity",
	"penetration testing", "owasp",

	// Other
	"blockchain", "ethereum", "solidity", "web3", "iot", "mqtt", "rabbitmq",
	"kafka", "apache kafka", "spark", "hadoop", "firebase", "supabase",
	"figma", "sketch", "adobe xd", "photoshop", "illustrator",
}

// synonyms maps informal or abbreviated tokens to their canonical form.
var synonyms = map[string]string{
	"js":       "javascript",
	"ts":       "typescript",
	"reactjs":  "react",
	"react.js": "react",
	"vuejs":    "vue",
	"vue.js":   "vue",
	"nodejs":   "node.js",
	"node":     "node.js",
	"nextjs":   "next.js",
	"postgres": "postgresql",
	"mongo":    "mongodb",
	"k8s":      "kubernetes",
	"gcp":      "google cloud",
	"aws":      "amazon web services",
	"ml":       "machine learning",
	"ai":       "artificial intelligence",
	"dotnet":   ".net",
	"csharp":   "c#",
	"cpp":      "c++",
	"golang":   "go",
}

// excluded holds noise words that section scans pick up but are not skills.
var excluded = map[string]struct{}{
	"experience": {}, "years": {}, "work": {}, "team": {}, "project": {}, "development": {},
	"software": {}, "engineer": {}, "developer": {}, "programming": {}, "coding": {},
	"technical": {}, "skills": {}, "technologies": {}, "tools": {}, "frameworks": {},
	"languages": {}, "databases": {}, "the": {}, "and": {}, "with": {}, "using": {},
	"strong": {}, "good": {}, "excellent": {}, "knowledge": {}, "understanding": {},
}

// Term is a dictionary entry with its precompiled matcher.
type Term struct {
	Name    string
	pattern *regexp.Regexp
}

// Matches reports whether the term occurs in lower-cased text.
func (t Term) Matches(lowerText string) bool {
	if t.pattern == nil {
		return strings.Contains(lowerText, t.Name)
	}
	return t.pattern.MatchString(lowerText)
}

var (
	terms []Term
	known map[string]struct{}
)

func init() {
	terms = make([]Term, 0, len(dictionary))
	known = make(map[string]struct{}, len(dictionary)+len(synonyms))
	for _, name := range dictionary {
		term := Term{Name: name}
		if !strings.Contains(name, " ") {
			// Boundaries are "not a letter or digit" so terms ending in symbols (c++, c#) still match.
			term.pattern = regexp.MustCompile(`(?:^|[^a-z0-9])` + regexp.QuoteMeta(name) + `(?:$|[^a-z0-9])`)
		}
		terms = append(terms, term)
		known[name] = struct{}{}
	}
	for _, canonical := range synonyms {
		known[canonical] = struct{}{}
	}
}

// Terms returns the dictionary entries in declaration order. The slice is shared and must not be modified.
func Terms() []Term {
	return terms
}

// Dictionary returns a copy of the raw dictionary.
func Dictionary() []string {
	out := make([]string, len(dictionary))
	copy(out, dictionary)
	return out
}

// IsKnown reports whether a normalized skill is part of the vocabulary.
func IsKnown(skill string) bool {
	_, ok := known[strings.ToLower(strings.TrimSpace(skill))]
	return ok
}

// IsExcluded reports whether a normalized token is a noise word.
func IsExcluded(skill string) bool {
	_, ok := excluded[strings.ToLower(strings.TrimSpace(skill))]
	return ok
}
