package assert

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
)

type AssertData interface {
	Dump() string
}

var assertData map[string]AssertData = map[string]AssertData{}
var writer io.Writer = os.Stderr
var onFailure func(msg string)

func AddAssertData(key string, value AssertData) {
	assertData[key] = value
}

func RemoveAssertData(key string) {
	delete(assertData, key)
}

func ToWriter(w io.Writer) {
	writer = w
}

// SetFailureHandler replaces the exit on a failed assertion. The handler runs
// after the report is written; passing nil restores the exit.
func SetFailureHandler(fn func(msg string)) {
	onFailure = fn
}

func runAssert(msg string, args ...interface{}) {
	slogValues := []interface{}{
		"msg",
		msg,
		"area",
		"Assert",
	}
	slogValues = append(slogValues, args...)

	for k, v := range assertData {
		slogValues = append(slogValues, k, v.Dump())
	}

	slog.Error("assertion failed", slogValues[2:]...)

	fmt.Fprintf(writer, "ASSERT\n")
	for i := 0; i+1 < len(slogValues); i += 2 {
		fmt.Fprintf(writer, "   %s=%v\n", slogValues[i], slogValues[i+1])
	}
	fmt.Fprintln(writer, string(debug.Stack()))

	if onFailure != nil {
		onFailure(msg)
		return
	}
	os.Exit(1)
}

// TODO Think about passing around a context for debugging purposes
func Assert(truth bool, msg string, data ...any) {
	if !truth {
		runAssert(msg, data...)
	}
}

// Full is an Assert that only runs in diagnostic builds. Building with the
// release tag turns it into a no-op, so it is not a production safety net.
func Full(truth bool, msg string, data ...any) {
	if FullEnabled && !truth {
		runAssert(msg, data...)
	}
}

func NotNil(item any, msg string) {
	if item == nil {
		slog.Error("NotNil#nil encountered")
		runAssert(msg)
	}
}

func Never(msg string, data ...any) {
	Assert(false, msg, data...)
}

func NoError(err error, msg string, data ...any) {
	if err != nil {
		slog.Error("NoError#error encountered", "error", err)
		runAssert(msg, data...)
	}
}
