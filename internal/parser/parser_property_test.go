//go:build property

package parser

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"git.home.luguber.info/inful/nmcr/internal/model"
)

// buildDoc renders a heading tree where every title is unique, so every
// heading path is unique too.
func buildDoc(levels []int, titles []string, code []bool, paths []bool) string {
	var b strings.Builder
	for i, level := range levels {
		fmt.Fprintf(&b, "%s S%d %s\n\n", strings.Repeat("#", level), i, titles[i])
		if paths[i] {
			fmt.Fprintf(&b, "Write to `out/%d.txt`:\n\n", i)
		}
		if code[i] {
			fmt.Fprintf(&b, "```\nbody %d\n```\n\n", i)
		}
	}
	return b.String()
}

func topLevelIDs(doc model.Document) []string {
	var ids []string
	for _, t := range doc.Templates() {
		ids = append(ids, t.TemplateID())
	}
	return ids
}

func TestParserProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(8642)
	parameters.MinSuccessfulTests = 150

	properties := gopter.NewProperties(parameters)

	const n = 6
	levels := gen.SliceOfN(n, gen.IntRange(1, 3))
	titles := gen.SliceOfN(n, gen.AlphaString())
	flags := gen.SliceOfN(n, gen.Bool())

	properties.Property("parsing is idempotent", prop.ForAll(
		func(levels []int, titles []string, code []bool, paths []bool) bool {
			input := buildDoc(levels, titles, code, paths)
			first, err1 := ParseString("doc", input)
			second, err2 := ParseString("doc", input)
			if err1 != nil || err2 != nil {
				return err1 != nil && err2 != nil && err1.Error() == err2.Error()
			}
			return reflect.DeepEqual(first, second)
		},
		levels, titles, flags, flags,
	))

	properties.Property("distinct heading paths never share an id", prop.ForAll(
		func(levels []int, titles []string, code []bool, paths []bool) bool {
			res, err := ParseString("doc", buildDoc(levels, titles, code, paths))
			if err != nil {
				return true
			}
			seen := map[string]bool{}
			for _, id := range topLevelIDs(res.Document) {
				if id == "" || seen[id] {
					return false
				}
				seen[id] = true
			}
			return true
		},
		levels, titles, flags, flags,
	))

	properties.Property("documents without code blocks have no templates", prop.ForAll(
		func(levels []int, titles []string) bool {
			none := make([]bool, n)
			_, err := ParseString("doc", buildDoc(levels, titles, none, none))
			return err != nil && strings.Contains(err.Error(), ErrNoTemplatesFound.Error())
		},
		levels, titles,
	))

	properties.TestingRun(t)
}
