package handshake

import (
	"fmt"

	"github.com/yntha/nebulous-go/jrand"
	"github.com/yntha/nebulous-go/wire"
)

// headerLen is the number of leading bytes of a CONNECT_REQUEST_3
// payload that are never shuffled: the type byte, the zero public_id,
// and the rng_seed itself (1 + 4 + 8 = 13, spec §4.D).
const headerLen = 13

// shuffle permutes payload[headerLen:] in place using rngSeed, so a
// server holding the same seed can invert it byte-for-byte (spec
// §4.D). payload must already hold the fully serialized
// CONNECT_REQUEST_3, header included.
func shuffle(payload []byte, rngSeed int64) error {
	if len(payload) < headerLen+1 {
		return fmt.Errorf("%w: connect payload too short to shuffle (%d bytes)", wire.ErrCorruption, len(payload))
	}

	rng := jrand.New(rngSeed)
	n := len(payload)
	for i := n - headerLen - 1; i >= 1; i-- {
		j := rng.NextInt(int32(i + 1))
		payload[i+headerLen], payload[int(j)+headerLen] = payload[int(j)+headerLen], payload[i+headerLen]
	}

	return selfCheck(payload, rngSeed)
}

// unshuffle applies the inverse permutation, used only by tests to
// confirm the shuffle is self-inverse under the seed (spec §8,
// scenario 6) -- a real client never needs to invert its own
// handshake request.
func unshuffle(payload []byte, rngSeed int64) error {
	if len(payload) < headerLen+1 {
		return fmt.Errorf("%w: connect payload too short to unshuffle (%d bytes)", wire.ErrCorruption, len(payload))
	}

	rng := jrand.New(rngSeed)
	n := len(payload)
	js := make([]int32, 0, n-headerLen-1)
	for i := n - headerLen - 1; i >= 1; i-- {
		js = append(js, rng.NextInt(int32(i+1)))
	}

	idx := len(js) - 1
	for i := 1; i <= n-headerLen-1; i++ {
		j := js[idx]
		idx--
		payload[i+headerLen], payload[int(j)+headerLen] = payload[int(j)+headerLen], payload[i+headerLen]
	}

	return nil
}

// selfCheck verifies the unshuffled header survived the permutation
// intact: type byte, zero public_id, and the echoed rng_seed (spec
// §4.D's "defensive assertion"). A mismatch means the shuffle wrote
// outside its declared region -- an encoder bug, not a transient
// condition, so it is always fatal.
func selfCheck(payload []byte, rngSeed int64) error {
	if len(payload) < headerLen {
		return fmt.Errorf("%w: payload shorter than header", wire.ErrCorruption)
	}

	r := wire.NewReader(payload)
	typeByte, err := r.U8()
	if err != nil {
		return err
	}
	if typeByte != connectRequest3Type {
		return fmt.Errorf("%w: header type byte corrupted: got %d, want %d", wire.ErrCorruption, typeByte, connectRequest3Type)
	}
	publicID, err := r.I32()
	if err != nil {
		return err
	}
	if publicID != 0 {
		return fmt.Errorf("%w: header public_id corrupted: got %d, want 0", wire.ErrCorruption, publicID)
	}
	seed, err := r.I64()
	if err != nil {
		return err
	}
	if seed != rngSeed {
		return fmt.Errorf("%w: header rng_seed corrupted: got %d, want %d", wire.ErrCorruption, seed, rngSeed)
	}

	return nil
}
