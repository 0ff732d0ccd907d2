package kem_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/kem"
)

func TestIdentifiers(t *testing.T) {
	seen := map[string]bool{}
	for _, alg := range kem.Algorithms() {
		id := alg.Identifier()
		require.NotEmpty(t, id, "algorithm %d has no identifier", int(alg))
		require.False(t, seen[id], "duplicate identifier %s", id)
		seen[id] = true
		require.Equal(t, id, alg.String())
	}
	require.Equal(t, "ML-KEM-768", kem.MLKEM768.Identifier())
	require.Equal(t, "sntrup761", kem.NtruPrimeSntrup761.Identifier())
	require.Equal(t, "Classic-McEliece-8192128f", kem.ClassicMcEliece8192128f.Identifier())
	require.Empty(t, kem.Algorithm(-1).Identifier())
	require.Equal(t, "kem.Algorithm(-1)", kem.Algorithm(-1).String())
	require.False(t, kem.Algorithm(-1).IsEnabled())
}

func TestParseAlgorithm(t *testing.T) {
	for _, alg := range kem.Algorithms() {
		got, err := kem.ParseAlgorithm(alg.Identifier())
		require.NoError(t, err)
		require.Equal(t, alg, got)
	}

	got, err := kem.ParseAlgorithm("ml-kem-1024")
	require.NoError(t, err)
	require.Equal(t, kem.MLKEM1024, got)

	_, err = kem.ParseAlgorithm("ML-KEM-2048")
	require.ErrorIs(t, err, oqs.ErrUnknownAlgorithm)
}

func TestAlgorithmText(t *testing.T) {
	type cfg struct {
		Algorithm kem.Algorithm `json:"algorithm"`
	}
	b, err := json.Marshal(cfg{Algorithm: kem.FrodoKEM640SHAKE})
	require.NoError(t, err)
	require.JSONEq(t, `{"algorithm":"FrodoKEM-640-SHAKE"}`, string(b))

	var back cfg
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, kem.FrodoKEM640SHAKE, back.Algorithm)

	require.Error(t, json.Unmarshal([]byte(`{"algorithm":"nope"}`), &back))
	_, err = kem.Algorithm(99).MarshalText()
	require.ErrorIs(t, err, oqs.ErrUnknownAlgorithm)
}

func TestDefaultAlgorithm(t *testing.T) {
	require.Equal(t, kem.MLKEM768, kem.DefaultAlgorithm)
}
