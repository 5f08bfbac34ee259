package testlogging

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	smerrors "github.com/Station-Manager/errors"
)

// testing panics with this text when t.Log is called after the test returned
const completedTestPanic = "has completed"

// TestOutput returns an Output writing to tb.Log. Writing after the test has
// completed returns an error classified by IsTestBoundary instead of
// panicking. A nil tb yields a nil Output.
func TestOutput(tb testing.TB) Output {
	if tb == nil {
		return nil
	}
	return &tbOutput{tb: tb}
}

type tbOutput struct {
	tb testing.TB
}

func (o *tbOutput) WriteLine(line string) (err error) {
	const op smerrors.Op = "testlogging.tbOutput.WriteLine"

	defer func() {
		if r := recover(); r != nil {
			if strings.Contains(fmt.Sprint(r), completedTestPanic) {
				err = smerrors.New(op).Err(ErrTestBoundary).Msg(errMsgTestBoundary)
				return
			}
			panic(r)
		}
	}()

	o.tb.Helper()
	o.tb.Log(line)
	return nil
}

// WriterOutput returns an Output writing one line per call to w. Writes are
// serialised. A nil w yields a nil Output.
func WriterOutput(w io.Writer) Output {
	if w == nil {
		return nil
	}
	return &writerOutput{w: w}
}

type writerOutput struct {
	mu sync.Mutex
	w  io.Writer
}

func (o *writerOutput) WriteLine(line string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := io.WriteString(o.w, line+lineBreak)
	return err
}
