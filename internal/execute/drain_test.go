package execute_test

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rife2/bld-exec/internal/execute"
)

const (
	testDrainFirstLineConstant  = "first line"
	testDrainSecondLineConstant = "second line"
	testDrainThirdLineConstant  = "third line"
)

func TestOutputDrainCollectsOrderedLines(testInstance *testing.T) {
	streamContent := strings.Join([]string{testDrainFirstLineConstant, testDrainSecondLineConstant, testDrainThirdLineConstant}, "\n")

	drain := execute.StartOutputDrain(strings.NewReader(streamContent))
	collectedLines := drain.Wait()

	require.Equal(testInstance, []string{testDrainFirstLineConstant, testDrainSecondLineConstant, testDrainThirdLineConstant}, collectedLines)
	require.NoError(testInstance, drain.ReadError())
}

func TestOutputDrainEmptyStream(testInstance *testing.T) {
	drain := execute.StartOutputDrain(strings.NewReader(""))
	require.Empty(testInstance, drain.Wait())
}

func TestOutputDrainWaitsForStreamClose(testInstance *testing.T) {
	pipeReader, pipeWriter := io.Pipe()
	drain := execute.StartOutputDrain(pipeReader)

	var waitGroup sync.WaitGroup
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		_, _ = pipeWriter.Write([]byte(testDrainFirstLineConstant + "\n"))
		_, _ = pipeWriter.Write([]byte(testDrainSecondLineConstant + "\n"))
		_ = pipeWriter.Close()
	}()

	collectedLines := drain.Wait()
	waitGroup.Wait()

	require.Equal(testInstance, []string{testDrainFirstLineConstant, testDrainSecondLineConstant}, collectedLines)
}

func TestOutputDrainConsumesStreamPastOversizedLine(testInstance *testing.T) {
	oversizedLine := strings.Repeat("a", 2*1024*1024)
	streamContent := testDrainFirstLineConstant + "\n" + oversizedLine + "\n" + testDrainSecondLineConstant + "\n"
	stream := strings.NewReader(streamContent)

	drain := execute.StartOutputDrain(stream)
	collectedLines := drain.Wait()

	require.Equal(testInstance, []string{testDrainFirstLineConstant}, collectedLines)
	require.ErrorIs(testInstance, drain.ReadError(), bufio.ErrTooLong)
	// The remainder of the stream was consumed so a real pipe writer could
	// never block against a stopped drain.
	require.Zero(testInstance, stream.Len())
}

func TestOutputDrainConcurrentDrainsDoNotInterfere(testInstance *testing.T) {
	firstDrain := execute.StartOutputDrain(strings.NewReader(testDrainFirstLineConstant))
	secondDrain := execute.StartOutputDrain(strings.NewReader(testDrainSecondLineConstant))

	require.Equal(testInstance, []string{testDrainFirstLineConstant}, firstDrain.Wait())
	require.Equal(testInstance, []string{testDrainSecondLineConstant}, secondDrain.Wait())
}
