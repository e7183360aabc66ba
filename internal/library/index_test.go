package library

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"

	"component-resolver/internal/provider"
)

func testOracle() *StaticOracle {
	return NewStaticOracle(Manifest{Modules: map[string]ManifestModule{
		"nodes/aws/compute": {Classes: []string{"EC2", "ECS", "EKS", "Lambda"}},
		"nodes/aws/network": {Classes: []string{"APIGateway", "PrivateSubnet", "PublicSubnet", "VPC"}},
		"nodes/aws/storage": {Classes: []string{"S3", "EFS"}, Exports: []string{"S3Glacier"}},
	}})
}

var testModules = []string{"nodes/aws/compute", "nodes/aws/network", "nodes/aws/storage"}

func TestIndexFindClass(t *testing.T) {
	idx := NewIndex(provider.AWS, testModules, testOracle())

	tests := []struct {
		name       string
		term       string
		hint       string
		wantModule string
		wantClass  string
		wantTier   Tier
	}{
		{"case insensitive exact", "lambda", "", "nodes/aws/compute", "Lambda", TierExact},
		{"normalized with separators", "api_gateway", "", "nodes/aws/network", "APIGateway", TierNormalized},
		{"normalized hyphenated", "api-gateway", "nodes/aws/network", "nodes/aws/network", "APIGateway", TierNormalized},
		{"vendor prefix stripped", "aws_lambda", "", "nodes/aws/compute", "Lambda", TierNormalized},
		{"substring", "gateway", "", "nodes/aws/network", "APIGateway", TierSubstring},
		{"token run", "lambda function", "", "nodes/aws/compute", "Lambda", TierSubstring},
		{"mid-word containment is similarity", "lambdaa", "", "nodes/aws/compute", "Lambda", TierSimilar},
		{"similar but not contained", "lamda", "", "nodes/aws/compute", "Lambda", TierSimilar},
		{"wrong hint falls through to global search", "vpc", "nodes/aws/compute", "nodes/aws/network", "VPC", TierExact},
		{"unknown hint ignored", "s3", "nodes/aws/unknown", "nodes/aws/storage", "S3", TierExact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := idx.FindClass(tt.term, tt.hint)
			require.True(t, ok, "no class found for %q", tt.term)

			assert.Equal(t, tt.wantModule, got.ModulePath, spew.Sdump(got))
			assert.Equal(t, tt.wantClass, got.ClassName, spew.Sdump(got))
			assert.Equal(t, tt.wantTier, got.Tier, spew.Sdump(got))
		})
	}
}

func TestIndexFindClassMisses(t *testing.T) {
	idx := NewIndex(provider.AWS, testModules, testOracle())

	for _, term := range []string{"", "   ", "totally-unknown-xyz", "qq"} {
		_, ok := idx.FindClass(term, "")
		assert.False(t, ok, "term %q", term)
	}
}

func TestIndexSubstringTierRespectsTokens(t *testing.T) {
	oracle := NewStaticOracle(Manifest{Modules: map[string]ManifestModule{
		"nodes/aws/storage": {Classes: []string{"EBS", "ElastiCacheCluster"}},
	}})
	idx := NewIndex(provider.AWS, []string{"nodes/aws/storage"}, oracle)

	_, ok := idx.FindClass("web server", "")
	assert.False(t, ok, "ebs sits mid-word in webserver")

	got, ok := idx.FindClass("elasticache", "")
	require.True(t, ok)
	assert.Equal(t, "ElastiCacheCluster", got.ClassName)
	assert.Equal(t, TierSubstring, got.Tier)
}

func TestTokenContains(t *testing.T) {
	tests := []struct {
		a, b []string
		want bool
	}{
		{[]string{"gateway"}, []string{"api", "gateway"}, true},
		{[]string{"api", "gateway", "v2"}, []string{"api", "gateway"}, true},
		{[]string{"elasticache"}, []string{"elasti", "cache", "cluster"}, true},
		{[]string{"web", "server"}, []string{"ebs"}, false},
		{[]string{"lambdaa"}, []string{"lambda"}, false},
		{[]string{"db"}, []string{"dynamo", "db"}, false},
		{nil, []string{"s3"}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tokenContains(tt.a, tt.b), "%v in %v", tt.a, tt.b)
	}
}

func TestIndexHintSearchedFirst(t *testing.T) {
	oracle := NewStaticOracle(Manifest{Modules: map[string]ManifestModule{
		"nodes/a": {Classes: []string{"Queue"}},
		"nodes/b": {Classes: []string{"Queue"}},
	}})
	idx := NewIndex(provider.AWS, []string{"nodes/a", "nodes/b"}, oracle)

	got, ok := idx.FindClass("queue", "nodes/b")
	require.True(t, ok)
	assert.Equal(t, "nodes/b", got.ModulePath)

	got, ok = idx.FindClass("queue", "")
	require.True(t, ok)
	assert.Equal(t, "nodes/a", got.ModulePath)
}

func TestIndexFindExact(t *testing.T) {
	idx := NewIndex(provider.AWS, testModules, testOracle())

	got, ok := idx.FindExact("ApiGateway", "")
	require.True(t, ok)
	assert.Equal(t, "APIGateway", got.ClassName)

	_, ok = idx.FindExact("gateway", "")
	assert.False(t, ok, "substring tier must not run")

	_, ok = idx.FindExact("lamda", "")
	assert.False(t, ok, "similarity tier must not run")
}

func TestIndexSimilarityCutoff(t *testing.T) {
	oracle := FuncOracle(func(string) (sets.Set[string], error) {
		return sets.New("Lambda"), nil
	})

	strict := NewIndex(provider.AWS, []string{"m"}, oracle, WithCutoff(0.99))
	_, ok := strict.FindClass("lamda", "")
	assert.False(t, ok)

	loose := NewIndex(provider.AWS, []string{"m"}, oracle, WithCutoff(0.5))
	_, ok = loose.FindClass("lamda", "")
	assert.True(t, ok)
}

func TestIndexDiscoverFailureIsEmpty(t *testing.T) {
	oracle := FuncOracle(func(modulePath string) (sets.Set[string], error) {
		switch modulePath {
		case "broken":
			return nil, errors.New("import failed")
		case "panics":
			panic("boom")
		case "nil":
			return nil, nil
		}

		return sets.New("Thing"), nil
	})
	idx := NewIndex(provider.GCP, []string{"broken", "panics", "nil", "ok"}, oracle)

	for _, m := range []string{"broken", "panics", "nil"} {
		assert.Equal(t, 0, idx.Discover(m).Len(), m)
	}

	assert.False(t, idx.Available("broken"))
	assert.False(t, idx.Available("panics"))
	assert.True(t, idx.Available("nil"))
	assert.True(t, idx.Has("ok", "Thing"))

	got, ok := idx.FindClass("thing", "broken")
	require.True(t, ok)
	assert.Equal(t, "ok", got.ModulePath)
}

func TestIndexNilOracle(t *testing.T) {
	idx := NewIndex(provider.AWS, []string{"m"}, nil)

	assert.Equal(t, 0, idx.Discover("m").Len())
	assert.False(t, idx.Available("m"))
	assert.False(t, idx.HasExport("m", "X"))
}

func TestIndexMemoizesAndFlushes(t *testing.T) {
	var calls atomic.Int32

	oracle := FuncOracle(func(string) (sets.Set[string], error) {
		calls.Add(1)
		return sets.New("A"), nil
	})
	idx := NewIndex(provider.AWS, []string{"m"}, oracle)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			idx.Discover("m")
		}()
	}

	wg.Wait()
	idx.FindClass("a", "m")
	assert.Equal(t, int32(1), calls.Load())

	idx.Flush()
	idx.Discover("m")
	assert.Equal(t, int32(2), calls.Load())
}

func TestIndexDiscoverReturnsCopy(t *testing.T) {
	idx := NewIndex(provider.AWS, testModules, testOracle())

	s := idx.Discover("nodes/aws/compute")
	s.Insert("Injected")

	assert.False(t, idx.Has("nodes/aws/compute", "Injected"))
}

func TestIndexWarm(t *testing.T) {
	var calls atomic.Int32

	oracle := FuncOracle(func(string) (sets.Set[string], error) {
		calls.Add(1)
		return sets.New("A"), nil
	})
	idx := NewIndex(provider.AWS, []string{"a", "b", "c", "a", ""}, oracle)

	require.NoError(t, idx.Warm(context.Background()))
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []string{"a", "b", "c"}, idx.Modules())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	idx.Flush()
	assert.ErrorIs(t, idx.Warm(ctx), context.Canceled)
}

func TestIndexAllAvailableClasses(t *testing.T) {
	idx := NewIndex(provider.AWS, testModules, testOracle())

	all := idx.AllAvailableClasses()
	require.Len(t, all, 3)
	assert.True(t, all["nodes/aws/storage"].Equal(sets.New("S3", "EFS")))
}

func TestIndexHasExport(t *testing.T) {
	idx := NewIndex(provider.AWS, testModules, testOracle())

	assert.False(t, idx.Has("nodes/aws/storage", "S3Glacier"))
	assert.True(t, idx.HasExport("nodes/aws/storage", "S3Glacier"))
	assert.True(t, idx.HasExport("nodes/aws/storage", "S3"))
	assert.False(t, idx.HasExport("nodes/aws/storage", "Missing"))

	funcIdx := NewIndex(provider.AWS, testModules, FuncOracle(func(string) (sets.Set[string], error) {
		return sets.New[string](), nil
	}))
	assert.False(t, funcIdx.HasExport("nodes/aws/storage", "S3Glacier"))
}

func TestIndexSubstring(t *testing.T) {
	idx := NewIndex(provider.AWS, testModules, testOracle())

	got := idx.Substring("subnet", 5)
	require.Len(t, got, 2, spew.Sdump(got))

	names := []string{got[0].ClassName, got[1].ClassName}
	assert.ElementsMatch(t, []string{"PrivateSubnet", "PublicSubnet"}, names)

	assert.Len(t, idx.Substring("subnet", 1), 1)
	assert.Empty(t, idx.Substring("s", 5))
	assert.Empty(t, idx.Substring("subnet", 0))
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "exact", TierExact.String())
	assert.Equal(t, "similar", TierSimilar.String())
	assert.Equal(t, "Tier(0)", Tier(0).String())
}
