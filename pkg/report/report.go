// Package report renders validation issues as a Markdown document.
package report

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/metricdocs/pkg/constants"
	"github.com/agentstation/metricdocs/pkg/errors"
	"github.com/agentstation/metricdocs/pkg/validator"
)

// Stats are the run totals shown in the report header.
type Stats struct {
	Entities      int
	Checked       int
	FailedFetches int
	Batches       int
}

// Write renders issues to path. With no issues nothing is written and a
// report left over from an earlier run is removed. It reports whether a
// file was written.
func Write(path string, issues []validator.Issue, stats Stats) (bool, error) {
	if len(issues) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return false, errors.WrapIO("delete", path, err)
		}
		return false, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return false, errors.WrapIO("create", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return false, errors.WrapIO("write", path, err)
	}
	defer f.Close() //nolint:errcheck

	if err := Render(md.NewMarkdown(f), issues, stats).Build(); err != nil {
		return false, errors.WrapIO("write", path, err)
	}
	return true, nil
}

// Render appends the report to doc.
func Render(doc *md.Markdown, issues []validator.Issue, stats Stats) *md.Markdown {
	doc.H1("Validation Report").
		PlainText(md.Bold(strconv.Itoa(len(issues))) + " issues across " +
			md.Bold(strconv.Itoa(countEntities(issues))) + " entities.").
		LF().
		BulletList(
			"Entities: "+strconv.Itoa(stats.Entities),
			"Samples checked: "+strconv.Itoa(stats.Checked),
			"Failed fetches: "+strconv.Itoa(stats.FailedFetches),
			"Batches: "+strconv.Itoa(stats.Batches),
		)

	doc.H2("Issues by code").Table(md.TableSet{
		Header: []string{"Code", "Issues"},
		Rows:   codeRows(issues),
	})

	groups := groupByCollection(issues)
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rows := make([][]string, 0, len(groups[name]))
		for _, issue := range groups[name] {
			_, id := issue.Entity.Split()
			message := issue.Message
			if issue.Count > 1 {
				message += " (x" + strconv.Itoa(issue.Count) + ")"
			}
			rows = append(rows, []string{md.Code(id), issue.Code, escape(message), fragment(issue.Fragment)})
		}
		doc.H2(name).Table(md.TableSet{
			Header: []string{"Entity", "Code", "Message", "Fragment"},
			Rows:   rows,
		})
	}
	return doc
}

func groupByCollection(issues []validator.Issue) map[string][]validator.Issue {
	out := make(map[string][]validator.Issue)
	for _, issue := range issues {
		name := issue.Collection
		if name == "" {
			name, _ = issue.Entity.Split()
		}
		out[name] = append(out[name], issue)
	}
	for _, group := range out {
		sort.SliceStable(group, func(i, j int) bool { return group[i].Entity < group[j].Entity })
	}
	return out
}

func codeRows(issues []validator.Issue) [][]string {
	counts := make(map[string]int)
	for _, issue := range issues {
		counts[issue.Code]++
	}
	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rows := make([][]string, len(codes))
	for i, code := range codes {
		rows[i] = []string{code, strconv.Itoa(counts[code])}
	}
	return rows
}

func countEntities(issues []validator.Issue) int {
	seen := make(map[string]struct{})
	for _, issue := range issues {
		seen[string(issue.Entity)] = struct{}{}
	}
	return len(seen)
}

func fragment(s string) string {
	if s == "" {
		return ""
	}
	return md.Code(escape(s))
}

// escape keeps table cells on one line.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
