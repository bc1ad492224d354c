package query_test

import (
	"testing"

	"github.com/vaultry/triage/pkg/query"
)

func exampleProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "gold_set_examples", "g").
		Project("id", "id").
		Project("category", "category").
		Project("created_at", "createdAt")
}

func ptr(s string) *string { return &s }

func TestProjectionMap(t *testing.T) {
	p := exampleProjection()

	t.Run("table", func(t *testing.T) {
		if got := p.Table(); got != "public.gold_set_examples g" {
			t.Errorf("Table() = %q", got)
		}
	})

	t.Run("alias", func(t *testing.T) {
		if got := p.Alias(); got != "g" {
			t.Errorf("Alias() = %q, want g", got)
		}
	})

	t.Run("columns", func(t *testing.T) {
		if got := p.Columns(); got != "g.id, g.category, g.created_at" {
			t.Errorf("Columns() = %q", got)
		}
	})

	t.Run("column list preserves order", func(t *testing.T) {
		got := p.ColumnList()
		want := []string{"g.id", "g.category", "g.created_at"}
		if len(got) != len(want) {
			t.Fatalf("ColumnList() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("ColumnList()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("column lookup", func(t *testing.T) {
		tests := []struct {
			viewName string
			want     string
		}{
			{"category", "g.category"},
			{"createdAt", "g.created_at"},
			{"unknown", "unknown"},
		}
		for _, tt := range tests {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
		}
	})
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty string", "", nil},
		{"single ascending", "category", []query.SortField{{Field: "category"}}},
		{"single descending", "-createdAt", []query.SortField{{Field: "createdAt", Descending: true}}},
		{
			"multiple mixed", "category,-createdAt",
			[]query.SortField{
				{Field: "category"},
				{Field: "createdAt", Descending: true},
			},
		},
		{
			"spaces trimmed", " category , -createdAt ",
			[]query.SortField{
				{Field: "category"},
				{Field: "createdAt", Descending: true},
			},
		},
		{
			"empty parts skipped", "category,,createdAt",
			[]query.SortField{
				{Field: "category"},
				{Field: "createdAt"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSortFields(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSortFields(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilder(t *testing.T) {
	t.Run("build", func(t *testing.T) {
		sql, args := query.NewBuilder(exampleProjection()).Build()

		want := "SELECT g.id, g.category, g.created_at FROM public.gold_set_examples g"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("build count", func(t *testing.T) {
		sql, _ := query.NewBuilder(exampleProjection()).BuildCount()

		if sql != "SELECT COUNT(*) FROM public.gold_set_examples g" {
			t.Errorf("sql = %q", sql)
		}
	})

	t.Run("build page", func(t *testing.T) {
		b := query.NewBuilder(exampleProjection(), query.SortField{Field: "createdAt", Descending: true})
		sql, _ := b.BuildPage(2, 10)

		want := "SELECT g.id, g.category, g.created_at FROM public.gold_set_examples g ORDER BY g.created_at DESC LIMIT 10 OFFSET 10"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})

	t.Run("build single", func(t *testing.T) {
		sql, args := query.NewBuilder(exampleProjection()).BuildSingle("id", "abc-123")

		want := "SELECT g.id, g.category, g.created_at FROM public.gold_set_examples g WHERE g.id = $1"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 1 || args[0] != "abc-123" {
			t.Errorf("args = %v, want [abc-123]", args)
		}
	})

	t.Run("build single or null", func(t *testing.T) {
		b := query.NewBuilder(exampleProjection())
		b.WhereEquals("category", "tax")
		sql, args := b.BuildSingleOrNull()

		want := "SELECT g.id, g.category, g.created_at FROM public.gold_set_examples g WHERE g.category = $1 LIMIT 1"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 1 || args[0] != "tax" {
			t.Errorf("args = %v, want [tax]", args)
		}
	})
}

func TestBuilderConditions(t *testing.T) {
	t.Run("where equals", func(t *testing.T) {
		b := query.NewBuilder(exampleProjection())
		b.WhereEquals("category", "tax")
		sql, args := b.Build()

		want := "SELECT g.id, g.category, g.created_at FROM public.gold_set_examples g WHERE g.category = $1"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 1 || args[0] != "tax" {
			t.Errorf("args = %v, want [tax]", args)
		}
	})

	t.Run("nil equals skipped", func(t *testing.T) {
		b := query.NewBuilder(exampleProjection())
		b.WhereEquals("category", nil)
		sql, args := b.Build()

		if sql != "SELECT g.id, g.category, g.created_at FROM public.gold_set_examples g" {
			t.Errorf("sql = %q", sql)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("where contains", func(t *testing.T) {
		b := query.NewBuilder(exampleProjection())
		b.WhereContains("category", ptr("tax"))
		sql, args := b.Build()

		want := "SELECT g.id, g.category, g.created_at FROM public.gold_set_examples g WHERE g.category ILIKE $1"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 1 || args[0] != "%tax%" {
			t.Errorf("args = %v, want [%%tax%%]", args)
		}
	})

	t.Run("nil and empty contains skipped", func(t *testing.T) {
		for _, value := range []*string{nil, ptr("")} {
			b := query.NewBuilder(exampleProjection())
			b.WhereContains("category", value)
			if _, args := b.Build(); len(args) != 0 {
				t.Errorf("args = %v, want empty", args)
			}
		}
	})

	t.Run("where in", func(t *testing.T) {
		b := query.NewBuilder(exampleProjection())
		b.WhereIn("category", []any{"tax", "income", "financial"})
		sql, args := b.Build()

		want := "SELECT g.id, g.category, g.created_at FROM public.gold_set_examples g WHERE g.category IN ($1, $2, $3)"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 3 {
			t.Errorf("args = %v, want 3 values", args)
		}
	})

	t.Run("empty in skipped", func(t *testing.T) {
		b := query.NewBuilder(exampleProjection())
		b.WhereIn("category", []any{})
		if _, args := b.Build(); len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("where nullable", func(t *testing.T) {
		b := query.NewBuilder(exampleProjection())
		b.WhereNullable("category", nil)
		sql, args := b.Build()

		want := "SELECT g.id, g.category, g.created_at FROM public.gold_set_examples g WHERE g.category IS NULL"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}

		b = query.NewBuilder(exampleProjection())
		b.WhereNullable("category", "tax")
		sql, args = b.Build()

		want = "SELECT g.id, g.category, g.created_at FROM public.gold_set_examples g WHERE g.category = $1"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 1 || args[0] != "tax" {
			t.Errorf("args = %v, want [tax]", args)
		}
	})

	t.Run("where search spans fields", func(t *testing.T) {
		b := query.NewBuilder(exampleProjection())
		b.WhereSearch(ptr("w2"), "category", "id")
		sql, args := b.Build()

		want := "SELECT g.id, g.category, g.created_at FROM public.gold_set_examples g WHERE (g.category ILIKE $1 OR g.id ILIKE $2)"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 2 || args[0] != "%w2%" || args[1] != "%w2%" {
			t.Errorf("args = %v, want doubled pattern", args)
		}
	})

	t.Run("nil search skipped", func(t *testing.T) {
		b := query.NewBuilder(exampleProjection())
		b.WhereSearch(nil, "category")
		if _, args := b.Build(); len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("conditions join with AND", func(t *testing.T) {
		b := query.NewBuilder(exampleProjection())
		b.WhereEquals("category", "tax")
		b.WhereContains("id", ptr("abc"))
		sql, args := b.Build()

		want := "SELECT g.id, g.category, g.created_at FROM public.gold_set_examples g WHERE g.category = $1 AND g.id ILIKE $2"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 2 {
			t.Errorf("args = %v, want 2 values", args)
		}
	})

	t.Run("order by fields overrides default sort", func(t *testing.T) {
		b := query.NewBuilder(exampleProjection(), query.SortField{Field: "id"})
		b.OrderByFields([]query.SortField{
			{Field: "createdAt", Descending: true},
			{Field: "category"},
		})
		sql, _ := b.Build()

		want := "SELECT g.id, g.category, g.created_at FROM public.gold_set_examples g ORDER BY g.created_at DESC, g.category ASC"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})
}
