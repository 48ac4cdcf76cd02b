package persist

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/strataform/strata/attr"
	"github.com/strataform/strata/bulk"
	"github.com/strataform/strata/model"
	"github.com/strataform/strata/tree"
)

func init() {
	attr.MustRegister("SampleSurvey", []attr.Attribute{
		attr.TreeAttribute{Key: "name", Tag: "Name", DType: attr.TypeString, Space: tree.SpaceXSD, XMLType: "string", Required: true, Writeable: true},
		attr.TreeAttribute{Key: "active", Tag: "IsActive", DType: attr.TypeBool, Space: tree.SpaceXSD, XMLType: attr.XMLTypeBoolean, Writeable: true},
		attr.ArrayAttribute{Key: "values", Tag: "Values", DType: attr.TypeFloatArray, Space: tree.SpaceModel, XMLType: attr.EncodingDoubleArray, Writeable: true},
	})
	attr.MustRegister("Checklist", []attr.Attribute{
		attr.TreeAttribute{Key: "note", Tag: "Note", DType: attr.TypeString, Space: tree.SpaceXSD, XMLType: "string", Writeable: true},
	})
}

// sample is a test domain type with one required tree attribute, one optional
// boolean, and one optional array attribute.
type sample struct {
	*Base
	name      string
	hasName   bool
	active    bool
	hasActive bool
	values    []float64
	hasValues bool
}

func newSample(m *model.Model, opts ...Option) (*sample, error) {
	s := &sample{Base: NewBase(m, opts...)}
	if err := Init(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *sample) SchemaType() string { return "SampleSurvey" }

func (s *sample) Apply(key string, value any) error {
	switch key {
	case "name":
		s.name, s.hasName = "", false
		if value != nil {
			s.name, s.hasName = value.(string), true
		}
	case "active":
		s.active, s.hasActive = false, false
		if value != nil {
			s.active, s.hasActive = value.(bool), true
		}
	default:
		return assert.AnError
	}
	return nil
}

func (s *sample) Value(key string) (any, bool) {
	switch key {
	case "name":
		if s.hasName {
			return s.name, true
		}
	case "active":
		if s.hasActive {
			return s.active, true
		}
	}
	return nil, false
}

func (s *sample) Array(key string) (bulk.Array, bool) {
	if key == "values" && s.hasValues {
		return bulk.Float64s(s.values), true
	}
	return bulk.Array{}, false
}

// cachedValues reads the array through the context-owned cache, the
// by-convention accessor every domain type provides for its array fields.
func (s *sample) cachedValues() ([]float64, bool) {
	arr, ok := s.Model().Store().Cached(s.UUID(), "Values")
	if !ok {
		return nil, false
	}
	return arr.Floats(), true
}

// checklist declares no array attributes.
type checklist struct {
	*Base
	note    string
	hasNote bool
}

func newChecklist(m *model.Model, opts ...Option) (*checklist, error) {
	c := &checklist{Base: NewBase(m, opts...)}
	if err := Init(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *checklist) SchemaType() string { return "Checklist" }

func (c *checklist) Apply(key string, value any) error {
	if key != "note" {
		return assert.AnError
	}
	c.note, c.hasNote = "", false
	if value != nil {
		c.note, c.hasNote = value.(string), true
	}
	return nil
}

func (c *checklist) Value(key string) (any, bool) {
	if key == "note" && c.hasNote {
		return c.note, true
	}
	return nil, false
}

func (c *checklist) Array(string) (bulk.Array, bool) {
	return bulk.Array{}, false
}

func newStoredModel(t *testing.T) *model.Model {
	t.Helper()
	store, err := bulk.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return model.New(model.WithStore(store))
}

func TestNewObjectGetsFreshIdentity(t *testing.T) {
	m := newStoredModel(t)

	first, err := newSample(m)
	require.NoError(t, err)
	second, err := newSample(m)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, first.UUID())
	assert.NotEqual(t, uuid.Nil, second.UUID())
	assert.NotEqual(t, first.UUID(), second.UUID())

	// Transient: no node, no part.
	assert.Nil(t, first.Root())
	assert.Equal(t, "", first.Part())
}

func TestAttachMissingNodeRequiredField(t *testing.T) {
	m := newStoredModel(t)

	_, err := newSample(m, WithUUID(uuid.New()))
	require.Error(t, err)
	assert.True(t, attr.IsMissingRequiredField(err))
}

func TestAttachMissingNodeOptionalFields(t *testing.T) {
	m := newStoredModel(t)

	c, err := newChecklist(m, WithUUID(uuid.New()))
	require.NoError(t, err)
	assert.False(t, c.hasNote)
	assert.Equal(t, "", c.Title())
}

func TestMaterializeRoundTrip(t *testing.T) {
	m := newStoredModel(t)

	s, err := newSample(m)
	require.NoError(t, err)
	s.name, s.hasName = "deviation survey 3", true
	s.active, s.hasActive = true, true
	s.values, s.hasValues = []float64{1.5, 2.25, math.Pi}, true

	require.NoError(t, Materialize(s, MaterializeOptions{Title: "Wondermuffin", Originator: "scruffian"}))
	require.NoError(t, CommitArrays(s, nil, bulk.ModeAppend))

	fresh, err := newSample(m, WithUUID(s.UUID()))
	require.NoError(t, err)
	assert.Equal(t, "Wondermuffin", fresh.Title())
	assert.Equal(t, "scruffian", fresh.Originator())
	assert.False(t, fresh.Created().IsZero())
	assert.Equal(t, "deviation survey 3", fresh.name)
	require.True(t, fresh.hasActive)
	assert.True(t, fresh.active)

	got, ok := fresh.cachedValues()
	require.True(t, ok)
	require.Len(t, got, len(s.values))
	for i, want := range s.values {
		assert.Equal(t, math.Float64bits(want), math.Float64bits(got[i]))
	}
}

func TestMaterializeWithoutValuesTolerated(t *testing.T) {
	m := newStoredModel(t)

	s, err := newSample(m)
	require.NoError(t, err)
	s.name, s.hasName = "sample", true

	require.NoError(t, Materialize(s, MaterializeOptions{Title: "no arrays yet"}))

	fresh, err := newSample(m, WithUUID(s.UUID()))
	require.NoError(t, err)
	assert.Equal(t, "sample", fresh.name)

	_, ok := fresh.cachedValues()
	assert.False(t, ok)
}

func TestMaterializeWithoutIdentity(t *testing.T) {
	m := newStoredModel(t)
	s := &sample{Base: &Base{model: m}}

	err := Materialize(s, MaterializeOptions{})
	require.Error(t, err)
	assert.True(t, attr.IsIdentityMissing(err))
}

func TestMaterializeTwiceAppendsSecondNode(t *testing.T) {
	m := newStoredModel(t)

	s, err := newSample(m)
	require.NoError(t, err)
	s.name, s.hasName = "twice", true

	require.NoError(t, Materialize(s, MaterializeOptions{}))
	first := m.ResolveNode(s.UUID())
	require.NoError(t, Materialize(s, MaterializeOptions{}))

	assert.Len(t, m.Document().Objects(), 2)
	// The identity index keeps pointing at the first node.
	assert.Equal(t, first, m.ResolveNode(s.UUID()))
}

func TestMaterializeDefaultsOriginator(t *testing.T) {
	m := newStoredModel(t)

	s, err := newSample(m)
	require.NoError(t, err)
	s.name, s.hasName = "login fallback", true

	require.NoError(t, Materialize(s, MaterializeOptions{}))
	assert.NotEqual(t, "", s.Originator())
}

func TestCommitArraysNoArraysDeclared(t *testing.T) {
	m := newStoredModel(t)

	c, err := newChecklist(m)
	require.NoError(t, err)

	err = CommitArrays(c, nil, bulk.ModeAppend)
	require.Error(t, err)
	assert.ErrorIs(t, err, attr.ErrNoArraysDeclared)
}

func TestCommitArraysWithoutStore(t *testing.T) {
	m := model.New()

	s, err := newSample(m)
	require.NoError(t, err)
	s.values, s.hasValues = []float64{1}, true

	err = CommitArrays(s, nil, bulk.ModeAppend)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no array store")
}

func TestCommitArraysExplicitTarget(t *testing.T) {
	m := newStoredModel(t)
	other, err := bulk.Open(":memory:")
	require.NoError(t, err)
	defer other.Close()

	s, err := newSample(m)
	require.NoError(t, err)
	s.values, s.hasValues = []float64{4, 5}, true

	require.NoError(t, CommitArrays(s, other, bulk.ModeCreate))

	key := bulk.Key{StoreID: m.StoreID(), Path: bulk.DatasetPath(s.UUID(), "Values")}
	got, err := other.Fetch(key, bulk.KindFloat64, s.UUID(), "values")
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5}, got.Floats())
}

func TestEqual(t *testing.T) {
	m := newStoredModel(t)
	id := uuid.New()

	a := &sample{Base: NewBase(m, WithTitle("one"))}
	a.Base.id = id
	b := &sample{Base: NewBase(m, WithTitle("completely different"))}
	b.Base.id = id
	c, err := newSample(m)
	require.NoError(t, err)

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))

	nilID := &sample{Base: &Base{model: m}}
	otherNilID := &sample{Base: &Base{model: m}}
	assert.False(t, Equal(nilID, a))
	assert.False(t, Equal(nilID, otherNilID))
	assert.False(t, Equal(nil, a))
}

func TestPartName(t *testing.T) {
	m := newStoredModel(t)

	s, err := newSample(m)
	require.NoError(t, err)
	s.name, s.hasName = "named", true

	require.NoError(t, Materialize(s, MaterializeOptions{}))
	assert.Equal(t, "obj_SampleSurvey_"+s.UUID().String()+".xml", s.Part())
}

func TestDeprecatedAliasesWarnAndDelegate(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store, err := bulk.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()
	m := model.New(model.WithStore(store), model.WithLogger(zap.New(core)))

	s, err := newSample(m)
	require.NoError(t, err)
	s.name, s.hasName = "legacy", true
	require.NoError(t, Materialize(s, MaterializeOptions{}))

	assert.Equal(t, s.Root(), s.RootNode())
	assert.Equal(t, s.Root(), s.XMLNode())

	entries := logs.FilterMessageSnippet("deprecated").All()
	assert.Len(t, entries, 2)
}

func TestBaseString(t *testing.T) {
	m := newStoredModel(t)
	s, err := newSample(m, WithTitle("display me"))
	require.NoError(t, err)

	assert.Contains(t, s.String(), "display me")
	assert.Contains(t, s.String(), s.UUID().String())
}
