package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/personpad/internal/record"
)

func decode(t *testing.T, doc string) any {
	t.Helper()
	v, err := record.Decode([]byte(doc))
	require.NoError(t, err)
	return v
}

func paths(entries []PathEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func TestEnumerate_Acyclic(t *testing.T) {
	root := decode(t, `{
		"Name": {"First": "Ada", "Last": "Lovelace"},
		"Age": 36,
		"Phones": [{"Number": "555-0100"}, "555-0199"],
		"Active": true,
		"Manager": null
	}`)

	entries := Enumerate(root, 0)

	assert.Equal(t, []string{
		"Name",
		"Name.First",
		"Name.Last",
		"Age",
		"Phones",
		"Phones[0]",
		"Phones[0].Number",
		"Phones[1]",
		"Active",
		"Manager",
	}, paths(entries))

	// Every path appears exactly once
	seen := make(map[string]int)
	for _, e := range entries {
		seen[e.Path]++
		assert.False(t, e.Cycle, "acyclic graph reported a cycle at %s", e.Path)
	}
	for path, n := range seen {
		assert.Equal(t, 1, n, "path %s emitted %d times", path, n)
	}
}

func TestEnumerate_EntryFields(t *testing.T) {
	root := decode(t, `{"Contact": {"Business": {"Email": "a@b.c"}}, "Tags": ["x"], "Empty": {}}`)
	entries := Enumerate(root, 0)

	contact, ok := Find(entries, "Contact")
	require.True(t, ok)
	assert.Equal(t, KindBranch, contact.Kind)
	assert.Equal(t, record.TypeObject, contact.Type)
	assert.Equal(t, 1, contact.Depth)
	assert.Equal(t, "", contact.Parent)
	assert.Equal(t, -1, contact.Index)
	assert.True(t, contact.Expandable)

	email, ok := Find(entries, "Contact.Business.Email")
	require.True(t, ok)
	assert.Equal(t, KindLeaf, email.Kind)
	assert.Equal(t, record.TypeString, email.Type)
	assert.Equal(t, 3, email.Depth)
	assert.Equal(t, "Contact.Business", email.Parent)
	assert.Equal(t, "Email", email.Label())

	tag, ok := Find(entries, "Tags[0]")
	require.True(t, ok)
	assert.Equal(t, 0, tag.Index)
	assert.Equal(t, "[0]", tag.Label())
	assert.Equal(t, "Tags", tag.Parent)

	empty, ok := Find(entries, "Empty")
	require.True(t, ok)
	assert.Equal(t, KindBranch, empty.Kind)
	assert.False(t, empty.Expandable, "empty containers have nothing to expand")
}

func TestEnumerate_SelfReference(t *testing.T) {
	a := record.NewObject()
	a.Set("name", "a")
	a.Set("self", a)

	entries := Enumerate(a, 0)

	require.Len(t, entries, 2)
	assert.Equal(t, "name", entries[0].Path)

	self := entries[1]
	assert.Equal(t, "self", self.Path)
	assert.Equal(t, KindLeaf, self.Kind)
	assert.True(t, self.Cycle)
	assert.False(t, self.Expandable)
	assert.Equal(t, record.TypeObject, self.Type)
}

func TestEnumerate_MutualReference(t *testing.T) {
	a := record.NewObject()
	b := record.NewObject()
	a.Set("b", b)
	b.Set("a", a)
	b.Set("v", 1.0)

	root := record.NewObject()
	root.Set("start", a)

	entries := Enumerate(root, 0)

	assert.Equal(t, []string{"start", "start.b", "start.b.a", "start.b.v"}, paths(entries))

	back, ok := Find(entries, "start.b.a")
	require.True(t, ok)
	assert.True(t, back.Cycle)
	assert.Equal(t, KindLeaf, back.Kind)
}

func TestEnumerate_CycleThroughArray(t *testing.T) {
	root := record.NewObject()
	list := []any{root, "x"}
	root.Set("list", list)

	entries := Enumerate(root, 0)

	assert.Equal(t, []string{"list", "list[0]", "list[1]"}, paths(entries))
	first, _ := Find(entries, "list[0]")
	assert.True(t, first.Cycle)
}

func TestEnumerate_SharedReferenceExpandedOnce(t *testing.T) {
	shared := record.NewObject()
	shared.Set("City", "Paris")

	root := record.NewObject()
	root.Set("Home", shared)
	root.Set("Work", shared)

	entries := Enumerate(root, 0)

	assert.Equal(t, []string{"Home", "Home.City", "Work"}, paths(entries))
	work, _ := Find(entries, "Work")
	assert.True(t, work.Cycle)
	assert.False(t, work.Expandable)
}

func TestEnumerate_MaxDepth(t *testing.T) {
	root := decode(t, `{"a": {"b": {"c": {"d": 1}}}, "z": 0}`)

	tests := []struct {
		maxDepth int
		want     []string
	}{
		{1, []string{"a", "z"}},
		{2, []string{"a", "a.b", "z"}},
		{3, []string{"a", "a.b", "a.b.c", "z"}},
		{10, []string{"a", "a.b", "a.b.c", "a.b.c.d", "z"}},
		{0, []string{"a", "a.b", "a.b.c", "a.b.c.d", "z"}},
	}

	for _, tt := range tests {
		entries := Enumerate(root, tt.maxDepth)
		assert.Equal(t, tt.want, paths(entries), "maxDepth=%d", tt.maxDepth)

		for _, e := range entries {
			if tt.maxDepth > 0 {
				assert.LessOrEqual(t, e.Depth, tt.maxDepth)
			}
		}
	}

	cut, _ := Find(Enumerate(root, 2), "a.b")
	assert.Equal(t, KindBranch, cut.Kind)
	assert.False(t, cut.Expandable, "containers at the depth bound are not expandable")
	assert.False(t, cut.Cycle)
}

func TestEnumerate_DepthCutDoesNotHideSharedValue(t *testing.T) {
	shared := record.NewObject()
	shared.Set("leaf", true)

	deep := record.NewObject()
	deep.Set("shared", shared)

	root := record.NewObject()
	root.Set("deep", deep)
	root.Set("shared", shared)

	entries := Enumerate(root, 2)

	assert.Equal(t, []string{"deep", "deep.shared", "shared", "shared.leaf"}, paths(entries))
	top, _ := Find(entries, "shared")
	assert.False(t, top.Cycle)
	assert.True(t, top.Expandable)
}

func TestEnumerate_OmitsUnsupportedValues(t *testing.T) {
	root := map[string]any{
		"fn":    func() {},
		"ch":    make(chan int),
		"ok":    "yes",
		"inner": []any{struct{}{}, 1},
	}

	entries := Enumerate(root, 0)

	assert.Equal(t, []string{"inner", "inner[1]", "ok"}, paths(entries))
}

func TestEnumerate_NonContainerRoot(t *testing.T) {
	assert.Empty(t, Enumerate("scalar", 0))
	assert.Empty(t, Enumerate(nil, 0))
	assert.Empty(t, Enumerate(record.NewObject(), 0))
}

func TestEnumerate_NonIdentifierKeys(t *testing.T) {
	root := decode(t, `{"Home Phone": {"ext": 1}, "2nd": true}`)
	entries := Enumerate(root, 0)

	assert.Equal(t, []string{`["Home Phone"]`, `["Home Phone"].ext`, `["2nd"]`}, paths(entries))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "leaf", KindLeaf.String())
	assert.Equal(t, "branch", KindBranch.String())
}
