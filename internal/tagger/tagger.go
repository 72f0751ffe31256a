// Package tagger matches job descriptions against a skill taxonomy and
// aggregates per-skill document counts.
package tagger

import (
	"regexp"
	"sort"
	"strings"

	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/taxonomy"
)

// SkillCount is the number of distinct jobs mentioning a skill.
type SkillCount struct {
	Skill string
	Count int
}

// Result is the outcome of one analysis pass.
type Result struct {
	Counts    []SkillCount // sorted by Count descending, ties in taxonomy order
	Valid     int          // jobs with a usable description
	Discarded int          // jobs dropped for lacking one
}

// matcher reports whether a lowercased text contains one pattern.
type matcher func(text string) bool

type compiledSkill struct {
	name     string
	matchers []matcher
}

// Tagger holds a compiled taxonomy. It is immutable and safe to reuse.
type Tagger struct {
	skills []compiledSkill
}

// New compiles every pattern of tax. Patterns are treated as literals.
func New(tax taxonomy.Taxonomy) *Tagger {
	skills := make([]compiledSkill, 0, len(tax))
	for _, s := range tax {
		cs := compiledSkill{name: s.Name}
		for _, p := range s.Patterns {
			cs.matchers = append(cs.matchers, compilePattern(p))
		}
		skills = append(skills, cs)
	}
	return &Tagger{skills: skills}
}

// compilePattern builds a matcher for one pattern. Phrases are matched as
// substrings; single words are anchored with \b on each side that starts or
// ends with a word character, so "c++" and ".net" still match.
func compilePattern(pattern string) matcher {
	p := strings.ToLower(strings.TrimSpace(pattern))
	if p == "" {
		return func(string) bool { return false }
	}
	if taxonomy.IsPhrase(p) {
		return func(text string) bool { return strings.Contains(text, p) }
	}

	expr := regexp.QuoteMeta(p)
	if isWordByte(p[0]) {
		expr = `\b` + expr
	}
	if isWordByte(p[len(p)-1]) {
		expr += `\b`
	}
	re := regexp.MustCompile(expr)
	return re.MatchString
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// Tag returns the names of the skills present in job, in taxonomy order.
// A job without a usable description has no skills.
func (t *Tagger) Tag(job model.Job) []string {
	if !job.HasDescription() {
		return nil
	}
	text := strings.ToLower(job.Description)

	var found []string
	for _, s := range t.skills {
		if s.present(text) {
			found = append(found, s.name)
		}
	}
	return found
}

func (s compiledSkill) present(text string) bool {
	for _, m := range s.matchers {
		if m(text) {
			return true
		}
	}
	return false
}

// Analyze counts, for every skill, how many jobs mention it at least once.
func (t *Tagger) Analyze(jobs []model.Job) Result {
	counts := make([]SkillCount, len(t.skills))
	for i, s := range t.skills {
		counts[i] = SkillCount{Skill: s.name}
	}

	var res Result
	for _, job := range jobs {
		if !job.HasDescription() {
			res.Discarded++
			continue
		}
		res.Valid++

		text := strings.ToLower(job.Description)
		for i, s := range t.skills {
			if s.present(text) {
				counts[i].Count++
			}
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	res.Counts = counts
	return res
}

// CountSkills is a convenience wrapper around New(tax).Analyze(jobs).Counts.
func CountSkills(jobs []model.Job, tax taxonomy.Taxonomy) []SkillCount {
	return New(tax).Analyze(jobs).Counts
}

// JobsWithSkill returns the jobs whose description mentions skill.
func (t *Tagger) JobsWithSkill(jobs []model.Job, skill string) []model.Job {
	var cs *compiledSkill
	for i := range t.skills {
		if t.skills[i].name == skill {
			cs = &t.skills[i]
			break
		}
	}
	if cs == nil {
		return nil
	}

	var matched []model.Job
	for _, job := range jobs {
		if job.HasDescription() && cs.present(strings.ToLower(job.Description)) {
			matched = append(matched, job)
		}
	}
	return matched
}
