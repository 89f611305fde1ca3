package messages

import (
	"bytes"
	"fmt"
	"io"
	"math"

	snapshotfb "github.com/cbodonnell/flipmatch/flatbuffers/snapshot"
	"github.com/cbodonnell/flipmatch/pkg/game/types"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
)

// SerializeGameState encodes a snapshot as a zstd-compressed flatbuffer.
func SerializeGameState(state *types.GameState) ([]byte, error) {
	if state == nil {
		return nil, fmt.Errorf("game state is nil")
	}
	b, err := SerializeGameStateFlatbuffer(state)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize game state: %v", err)
	}

	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(b); err != nil {
		return nil, fmt.Errorf("failed to compress game state: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}

	return compressed.Bytes(), nil
}

// DeserializeGameState decodes a snapshot written by SerializeGameState.
func DeserializeGameState(data []byte) (*types.GameState, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()
	b, err := io.ReadAll(compReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read decompressed game state: %v", err)
	}

	state, err := DeserializeGameStateFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize game state: %v", err)
	}

	return state, nil
}

func SerializeGameStateFlatbuffer(state *types.GameState) ([]byte, error) {
	for _, v := range []int{state.Rows, state.Columns, state.Score, state.Streak} {
		if v > math.MaxInt32 || v < math.MinInt32 {
			return nil, fmt.Errorf("value %d overflows int32", v)
		}
	}

	builder := flatbuffers.NewBuilder(0)

	cardStates := make([]flatbuffers.UOffsetT, 0, len(state.CardStates))
	for _, cs := range state.CardStates {
		if cs.Token.ID > math.MaxInt32 || cs.Token.ID < math.MinInt32 {
			return nil, fmt.Errorf("token id %d overflows int32", cs.Token.ID)
		}
		visualKey := builder.CreateString(cs.Token.VisualKey)

		snapshotfb.CardStateStart(builder)
		snapshotfb.CardStateAddTokenId(builder, int32(cs.Token.ID))
		snapshotfb.CardStateAddVisualKey(builder, visualKey)
		snapshotfb.CardStateAddMatched(builder, cs.Matched)
		cardStates = append(cardStates, snapshotfb.CardStateEnd(builder))
	}
	snapshotfb.GameStateStartCardStatesVector(builder, len(cardStates))
	for i := len(cardStates) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(cardStates[i])
	}
	cardStatesVector := builder.EndVector(len(cardStates))

	snapshotfb.GameStateStart(builder)
	snapshotfb.GameStateAddRows(builder, int32(state.Rows))
	snapshotfb.GameStateAddColumns(builder, int32(state.Columns))
	snapshotfb.GameStateAddScore(builder, int32(state.Score))
	snapshotfb.GameStateAddStreak(builder, int32(state.Streak))
	snapshotfb.GameStateAddCardStates(builder, cardStatesVector)
	gameState := snapshotfb.GameStateEnd(builder)
	builder.Finish(gameState)

	return builder.FinishedBytes(), nil
}

func DeserializeGameStateFlatbuffer(b []byte) (state *types.GameState, err error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("buffer too short: %d bytes", len(b))
	}
	// the generated accessors index the buffer directly and panic on corrupt input
	defer func() {
		if r := recover(); r != nil {
			state = nil
			err = fmt.Errorf("corrupt game state buffer: %v", r)
		}
	}()

	fb := snapshotfb.GetRootAsGameState(b, 0)
	state = &types.GameState{
		Rows:       int(fb.Rows()),
		Columns:    int(fb.Columns()),
		Score:      int(fb.Score()),
		Streak:     int(fb.Streak()),
		CardStates: make([]types.CardState, 0, fb.CardStatesLength()),
	}
	for i := 0; i < fb.CardStatesLength(); i++ {
		cs := &snapshotfb.CardState{}
		if !fb.CardStates(cs, i) {
			return nil, fmt.Errorf("failed to get card state at index %d", i)
		}
		state.CardStates = append(state.CardStates, types.CardState{
			Token: types.Token{
				ID:        int(cs.TokenId()),
				VisualKey: string(cs.VisualKey()),
			},
			Matched: cs.Matched(),
		})
	}

	return state, nil
}
