package nebulous

import (
	"math/rand"
	"testing"
)

func TestNewDiscoveryAliasLength(t *testing.T) {
	src := rand.New(rand.NewSource(1))
	alias := newDiscoveryAlias(src)
	if len(alias) != aliasLen {
		t.Fatalf("len(alias) = %d, want %d", len(alias), aliasLen)
	}
}

func TestNewDiscoveryAliasPrintableASCII(t *testing.T) {
	src := rand.New(rand.NewSource(2))
	for i := 0; i < 100; i++ {
		alias := newDiscoveryAlias(src)
		for _, b := range []byte(alias) {
			if b < aliasMin || b > aliasMax {
				t.Fatalf("alias byte %d out of range [%d, %d]", b, aliasMin, aliasMax)
			}
		}
	}
}

func TestNewDiscoveryAliasVariesAcrossCalls(t *testing.T) {
	src := rand.New(rand.NewSource(3))
	a := newDiscoveryAlias(src)
	b := newDiscoveryAlias(src)
	if a == b {
		t.Fatal("two consecutive aliases from the same source should not collide")
	}
}
