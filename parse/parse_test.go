package parse_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/descent/parse"
	"github.com/dhamidi/descent/slice"
)

type state = struct{}

type bytePos = slice.BytePos

// testError is a grammar error that records where it was raised.
type testError struct {
	at    int
	fatal bool
}

func (e testError) Error() string {
	return fmt.Sprintf("test error at %d (fatal=%t)", e.at, e.fatal)
}

func (e testError) Recoverable() bool { return !e.fatal }

// byteBelow reads one byte. It fails recoverably at the end of the input and
// fatally when the byte is not below limit.
func byteBelow(limit byte) parse.Parser[state, bytePos, byte, testError] {
	return func(_ *parse.Driver[state], pos bytePos) parse.Progress[bytePos, byte, testError] {
		next, b, _, ok := pos.Take1().Finish()
		if !ok {
			return parse.Failure[byte](pos, testError{at: pos.Offset()})
		}
		if b >= limit {
			return parse.Failure[byte](pos, testError{at: pos.Offset(), fatal: true})
		}
		return parse.Success[testError](next, b)
	}
}

var anyByte = byteBelow(255)

// exact matches the single byte want and fails recoverably otherwise.
func exact(want byte) parse.Parser[state, bytePos, byte, testError] {
	return func(_ *parse.Driver[state], pos bytePos) parse.Progress[bytePos, byte, testError] {
		next, b, _, ok := pos.Take1().Finish()
		if !ok || b != want {
			return parse.Failure[byte](pos, testError{at: pos.Offset()})
		}
		return parse.Success[testError](next, b)
	}
}

// failAt fails without consuming input and reports the failure at the given
// offset past pos.
func failAt(skip int, fatal bool) parse.Parser[state, bytePos, byte, testError] {
	return func(_ *parse.Driver[state], pos bytePos) parse.Progress[bytePos, byte, testError] {
		at := pos.AdvanceBy(skip)
		return parse.Failure[byte](at, testError{at: at.Offset(), fatal: fatal})
	}
}

func run[T any](p parse.Parser[state, bytePos, T, testError], input []byte) parse.Progress[bytePos, T, testError] {
	return p(parse.NewDriver(), slice.New(input))
}

func TestProgress(t *testing.T) {
	start := slice.New([]byte{1, 2, 3})
	ok := anyByte(parse.NewDriver(), start)
	bad := anyByte(parse.NewDriver(), slice.New([]byte{}))

	t.Run("accessors", func(t *testing.T) {
		assert.True(t, ok.IsOk())
		assert.True(t, bad.IsErr())
		v, present := ok.Value()
		assert.True(t, present)
		assert.Equal(t, byte(1), v)
		_, present = bad.Err()
		assert.True(t, present)
		assert.Equal(t, 1, ok.Pos().Offset())
	})

	t.Run("unwrap panics on the wrong variant", func(t *testing.T) {
		assert.Panics(t, func() { bad.Unwrap() })
		assert.Panics(t, func() { ok.UnwrapErr() })
	})

	t.Run("map keeps the cursor", func(t *testing.T) {
		m := parse.Map(ok, func(b byte) int { return int(b) * 10 })
		pos, v := m.Unwrap()
		assert.Equal(t, 10, v)
		assert.Equal(t, 1, pos.Offset())
	})

	t.Run("map err keeps the cursor", func(t *testing.T) {
		m := parse.MapErrWithPos(bad, func(e testError, pos bytePos) string {
			return fmt.Sprintf("wrapped %d", pos.Offset())
		})
		pos, err := m.UnwrapErr()
		assert.Equal(t, "wrapped 0", err)
		assert.Equal(t, 0, pos.Offset())
	})

	t.Run("and then restores on refinement failure", func(t *testing.T) {
		r := parse.AndThen(ok, start, func(b byte) (string, testError, bool) {
			return "", testError{at: 99, fatal: true}, false
		})
		pos, err := r.UnwrapErr()
		assert.Equal(t, 0, pos.Offset())
		assert.Equal(t, 99, err.at)
	})

	t.Run("and then passes success through", func(t *testing.T) {
		r := parse.AndThen(ok, start, func(b byte) (string, testError, bool) {
			return "one", testError{}, true
		})
		pos, v := r.Unwrap()
		assert.Equal(t, "one", v)
		assert.Equal(t, 1, pos.Offset())
	})

	t.Run("to converts both sides", func(t *testing.T) {
		toInt := func(b byte) int { return int(b) }
		toStr := func(e testError) string { return e.Error() }
		_, v := parse.To(ok, toInt, toStr).Unwrap()
		assert.Equal(t, 1, v)
		_, err := parse.To(bad, toInt, toStr).UnwrapErr()
		assert.Equal(t, "test error at 0 (fatal=false)", err)
	})

	t.Run("rewind on err", func(t *testing.T) {
		failed := parse.Failure[byte](start.AdvanceBy(2), testError{})
		assert.Equal(t, 0, failed.RewindOnErr(start).Pos().Offset())
		assert.Equal(t, 1, ok.RewindOnErr(start).Pos().Offset())
	})

	t.Run("optional", func(t *testing.T) {
		pos, m := bad.Optional(start)
		assert.True(t, m.IsNone())
		assert.Equal(t, 0, pos.Offset())
		pos, m = ok.Optional(start)
		assert.Equal(t, byte(1), m.Or(0))
		assert.Equal(t, 1, pos.Offset())
	})

	t.Run("then and propagate", func(t *testing.T) {
		two := parse.Then(ok, func(pos bytePos, first byte) parse.Progress[bytePos, [2]byte, testError] {
			r := anyByte(parse.NewDriver(), pos)
			if r.IsErr() {
				return parse.Propagate[[2]byte](r)
			}
			next, second := r.Unwrap()
			return parse.Success[testError](next, [2]byte{first, second})
		})
		pos, v := two.Unwrap()
		assert.Equal(t, [2]byte{1, 2}, v)
		assert.Equal(t, 2, pos.Offset())
		assert.Panics(t, func() { parse.Propagate[int](ok) })
	})
}

func TestCount(t *testing.T) {
	t.Run("collects exactly n values", func(t *testing.T) {
		pos, v := run(parse.Count(2, anyByte), []byte{1, 2, 3}).Unwrap()
		assert.Equal(t, []byte{1, 2}, v)
		assert.Equal(t, 2, pos.Offset())
	})

	t.Run("zero repetitions succeed at the start", func(t *testing.T) {
		pos, v := run(parse.Count(0, anyByte), []byte{1}).Unwrap()
		assert.Empty(t, v)
		assert.Equal(t, 0, pos.Offset())
	})

	t.Run("negative count is empty", func(t *testing.T) {
		pos, v := run(parse.Count(-1, anyByte), []byte{1}).Unwrap()
		assert.Empty(t, v)
		assert.Equal(t, 0, pos.Offset())
	})

	t.Run("short input rewinds to the start", func(t *testing.T) {
		pos, err := run(parse.Count(3, anyByte), []byte{1, 2}).UnwrapErr()
		assert.Equal(t, 0, pos.Offset())
		assert.Equal(t, testError{at: 2}, err)
	})

	t.Run("fatal failure rewinds to the start", func(t *testing.T) {
		pos, err := run(parse.Count(3, byteBelow(5)), []byte{1, 9, 2}).UnwrapErr()
		assert.Equal(t, 0, pos.Offset())
		assert.Equal(t, testError{at: 1, fatal: true}, err)
	})

	t.Run("skip count", func(t *testing.T) {
		pos, _ := run(parse.SkipCount(2, anyByte), []byte{1, 2, 3}).Unwrap()
		assert.Equal(t, 2, pos.Offset())
	})

	t.Run("count into a map sink", func(t *testing.T) {
		pair := parse.Sequence2(anyByte, anyByte, func(k, v byte) parse.Entry[byte, byte] {
			return parse.Entry[byte, byte]{Key: k, Value: v}
		})
		p := parse.CountInto(3, func() parse.KeyMap[byte, byte] { return parse.KeyMap[byte, byte]{} }, pair)
		_, m := run(p, []byte{1, 10, 2, 20, 1, 30}).Unwrap()
		if diff := cmp.Diff(parse.KeyMap[byte, byte]{1: 30, 2: 20}, m); diff != "" {
			t.Errorf("CountInto() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("sink is fresh for every run", func(t *testing.T) {
		p := parse.Count(1, anyByte)
		_, first := run(p, []byte{1}).Unwrap()
		_, second := run(p, []byte{2}).Unwrap()
		assert.Equal(t, []byte{1}, first)
		assert.Equal(t, []byte{2}, second)
	})
}

func TestZeroOrMore(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    []byte
		wantPos int
		wantErr *testError
	}{
		{name: "empty input", input: nil, want: []byte{}, wantPos: 0},
		{name: "stops at the end", input: []byte{10, 20}, want: []byte{10, 20}, wantPos: 2},
		{name: "fatal failure rewinds to the start", input: []byte{10, 20, 64, 30}, wantPos: 0, wantErr: &testError{at: 2, fatal: true}},
		{name: "fatal first attempt", input: []byte{64}, wantPos: 0, wantErr: &testError{at: 0, fatal: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, v, err, ok := run(parse.ZeroOrMore(byteBelow(64)), tt.input).Finish()
			assert.Equal(t, tt.wantPos, pos.Offset())
			if tt.wantErr != nil {
				require.False(t, ok)
				assert.Equal(t, *tt.wantErr, err)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}

	t.Run("recoverable failure stops before the attempt", func(t *testing.T) {
		pos, v := run(parse.ZeroOrMore(exact(7)), []byte{7, 7, 8}).Unwrap()
		assert.Equal(t, []byte{7, 7}, v)
		assert.Equal(t, 2, pos.Offset())
	})

	t.Run("recoverable failure reported past the attempt is ignored", func(t *testing.T) {
		p := parse.OneOf(exact(7), failAt(1, false))
		pos, v := run(parse.ZeroOrMore(p), []byte{7, 8, 9}).Unwrap()
		assert.Equal(t, []byte{7}, v)
		assert.Equal(t, 1, pos.Offset())
	})

	t.Run("into a discard sink", func(t *testing.T) {
		p := parse.ZeroOrMoreInto(func() parse.Discard[byte] { return parse.Discard[byte]{} }, anyByte)
		pos, _ := run(p, []byte{1, 2, 3}).Unwrap()
		assert.Equal(t, 3, pos.Offset())
	})
}

func TestOneOrMore(t *testing.T) {
	t.Run("never returns an empty result", func(t *testing.T) {
		for _, input := range [][]byte{nil, {8}, {7}, {7, 7, 7, 8}} {
			r := run(parse.OneOrMore(exact(7)), input)
			if v, ok := r.Value(); ok {
				assert.NotEmpty(t, v, "input %v", input)
			}
		}
	})

	t.Run("first failure is reported at the start", func(t *testing.T) {
		pos, err := run(parse.OneOrMore(exact(7)), []byte{8}).UnwrapErr()
		assert.Equal(t, 0, pos.Offset())
		assert.Equal(t, testError{at: 0}, err)
	})

	t.Run("collects until a recoverable failure", func(t *testing.T) {
		pos, v := run(parse.OneOrMore(exact(7)), []byte{7, 7, 8}).Unwrap()
		assert.Equal(t, []byte{7, 7}, v)
		assert.Equal(t, 2, pos.Offset())
	})

	t.Run("fatal failure after the first rewinds to the start", func(t *testing.T) {
		pos, err := run(parse.OneOrMore(byteBelow(64)), []byte{1, 2, 99}).UnwrapErr()
		assert.Equal(t, 0, pos.Offset())
		assert.True(t, err.fatal)
	})
}

func TestOptional(t *testing.T) {
	t.Run("success is present", func(t *testing.T) {
		pos, m := run(parse.Optional(exact(7)), []byte{7}).Unwrap()
		v, ok := m.Get()
		assert.True(t, ok)
		assert.Equal(t, byte(7), v)
		assert.Equal(t, 1, pos.Offset())
	})

	t.Run("recoverable failure is absent at the start", func(t *testing.T) {
		pos, m := run(parse.Optional(failAt(1, false)), []byte{1, 2}).Unwrap()
		assert.True(t, m.IsNone())
		assert.Equal(t, 0, pos.Offset())
	})

	t.Run("fatal failure is kept with its cursor", func(t *testing.T) {
		pos, err := run(parse.Optional(failAt(1, true)), []byte{1, 2}).UnwrapErr()
		assert.Equal(t, 1, pos.Offset())
		assert.True(t, err.fatal)
	})

	t.Run("run optional through the driver", func(t *testing.T) {
		d := parse.NewDriver()
		pos, m := parse.RunOptional(d, slice.New([]byte{8}), exact(7)).Unwrap()
		assert.True(t, m.IsNone())
		assert.Equal(t, 0, pos.Offset())
	})
}

func TestAlternate(t *testing.T) {
	t.Run("first success wins", func(t *testing.T) {
		d := parse.NewDriver()
		calls := 0
		counted := func(_ *parse.Driver[state], pos bytePos) parse.Progress[bytePos, byte, testError] {
			calls++
			return parse.Success[testError](pos, byte(0))
		}
		pos, v := parse.Alternate[byte, testError](d, slice.New([]byte{1, 2})).
			One(exact(9)).
			One(exact(1)).
			One(counted).
			Finish().
			Unwrap()
		assert.Equal(t, byte(1), v)
		assert.Equal(t, 1, pos.Offset())
		assert.Zero(t, calls)
	})

	t.Run("all errors after recoverable failures", func(t *testing.T) {
		d := parse.NewDriver()
		acc := parse.ErrorAccumulator[bytePos, testError, []testError](&parse.AllErrors[bytePos, testError]{})
		pos, errs := parse.AlternateWith[byte](d, slice.New([]byte{1, 2, 3}), acc).
			One(failAt(0, false)).
			One(failAt(2, false)).
			One(failAt(1, false)).
			Finish().
			UnwrapErr()
		want := []testError{{at: 0}, {at: 2}, {at: 1}}
		if diff := cmp.Diff(want, errs, cmp.AllowUnexported(testError{})); diff != "" {
			t.Errorf("errors mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, 1, pos.Offset())
	})

	t.Run("fatal failure stops the alternation", func(t *testing.T) {
		d := parse.NewDriver()
		calls := 0
		counted := func(_ *parse.Driver[state], pos bytePos) parse.Progress[bytePos, byte, testError] {
			calls++
			return parse.Success[testError](pos, byte(0))
		}
		acc := parse.ErrorAccumulator[bytePos, testError, []testError](&parse.AllErrors[bytePos, testError]{})
		pos, errs := parse.AlternateWith[byte](d, slice.New([]byte{1, 2, 3}), acc).
			One(failAt(0, false)).
			One(failAt(2, true)).
			One(counted).
			Finish().
			UnwrapErr()
		assert.Zero(t, calls)
		assert.Equal(t, 2, pos.Offset())
		assert.Equal(t, []testError{{at: 0}, {at: 2, fatal: true}}, errs)
	})

	t.Run("last error", func(t *testing.T) {
		d := parse.NewDriver()
		pos, err := parse.Alternate[byte, testError](d, slice.New([]byte{1, 2, 3})).
			One(failAt(2, false)).
			One(failAt(1, false)).
			Finish().
			UnwrapErr()
		assert.Equal(t, testError{at: 1}, err)
		assert.Equal(t, 1, pos.Offset())
	})

	t.Run("discard errors", func(t *testing.T) {
		d := parse.NewDriver()
		acc := parse.ErrorAccumulator[bytePos, testError, struct{}](&parse.DiscardErrors[bytePos, testError]{})
		r := parse.AlternateWith[byte](d, slice.New([]byte{1}), acc).
			One(failAt(0, false)).
			Finish()
		assert.True(t, r.IsErr())
	})

	t.Run("finish without candidates panics", func(t *testing.T) {
		d := parse.NewDriver()
		assert.Panics(t, func() {
			parse.Alternate[byte, testError](d, slice.New([]byte{1})).Finish()
		})
	})

	t.Run("one of", func(t *testing.T) {
		p := parse.OneOf(exact(1), exact(2))
		_, v := run(p, []byte{2}).Unwrap()
		assert.Equal(t, byte(2), v)
	})
}

func TestFurthestErrors(t *testing.T) {
	t.Run("keeps only the errors at the greatest cursor", func(t *testing.T) {
		acc := &parse.FurthestErrors[parse.Offset, string]{}
		for i, at := range []parse.Offset{0, 0, 3, 1} {
			acc.Add(fmt.Sprintf("e%d", i), at)
		}
		assert.Equal(t, []string{"e2"}, acc.Finish())
		assert.Equal(t, parse.Offset(3), acc.Pos())
	})

	t.Run("keeps ties together", func(t *testing.T) {
		acc := &parse.FurthestErrors[parse.Offset, string]{}
		acc.Add("a", 2)
		acc.Add("b", 1)
		acc.Add("c", 2)
		assert.Equal(t, []string{"a", "c"}, acc.Finish())
	})

	t.Run("first error at the zero cursor is kept", func(t *testing.T) {
		acc := &parse.FurthestErrors[parse.Offset, string]{}
		acc.Add("a", 0)
		assert.Equal(t, []string{"a"}, acc.Finish())
	})

	t.Run("in an alternation", func(t *testing.T) {
		d := parse.NewDriver()
		acc := &parse.FurthestErrors[bytePos, testError]{}
		_, errs := parse.AlternateWith[byte](d, slice.New([]byte{1, 2, 3, 4}), parse.ErrorAccumulator[bytePos, testError, []testError](acc)).
			One(failAt(0, false)).
			One(failAt(0, false)).
			One(failAt(3, false)).
			One(failAt(1, false)).
			Finish().
			UnwrapErr()
		assert.Equal(t, []testError{{at: 3}}, errs)
		assert.Equal(t, 3, acc.Pos().Offset())
	})
}

func TestLastError(t *testing.T) {
	acc := &parse.LastError[parse.Offset, string]{}
	assert.Panics(t, func() { acc.Finish() })
	acc.Add("a", 1)
	acc.Add("b", 0)
	assert.Equal(t, "b", acc.Finish())
}

func TestAddProgress(t *testing.T) {
	acc := &parse.AllErrors[bytePos, testError]{}
	r := parse.AddProgress[bytePos, byte, testError, []testError](acc, run(anyByte, nil))
	assert.True(t, r.IsErr())
	r = parse.AddProgress[bytePos, byte, testError, []testError](acc, run(anyByte, []byte{1}))
	assert.True(t, r.IsOk())
	assert.Equal(t, []testError{{at: 0}}, acc.Finish())
}

func TestSequence(t *testing.T) {
	t.Run("binds every step", func(t *testing.T) {
		d := parse.NewDriver()
		s := parse.Begin[testError](d, slice.New([]byte{1, 2, 3}))
		a := parse.Step(s, anyByte)
		b := parse.Step(s, anyByte)
		pos, sum := parse.Build(s, func(_ *parse.Driver[state], pos bytePos) int {
			return int(a) + int(b) + pos.Offset()
		}).Unwrap()
		assert.Equal(t, 5, sum)
		assert.Equal(t, 2, pos.Offset())
	})

	t.Run("stops at the first failure without rewinding", func(t *testing.T) {
		d := parse.NewDriver()
		calls := 0
		counted := func(_ *parse.Driver[state], pos bytePos) parse.Progress[bytePos, byte, testError] {
			calls++
			return parse.Success[testError](pos, byte(0))
		}
		s := parse.Begin[testError](d, slice.New([]byte{1, 2, 3}))
		parse.Step(s, anyByte)
		missing := parse.Step(s, exact(9))
		parse.Step(s, counted)
		assert.True(t, s.Failed())
		assert.Zero(t, missing)
		assert.Zero(t, calls)
		pos, err := parse.Yield(s, "never").UnwrapErr()
		assert.Equal(t, 1, pos.Offset())
		assert.Equal(t, testError{at: 1}, err)
	})

	t.Run("fixed arity", func(t *testing.T) {
		p := parse.Sequence3(exact(1), anyByte, exact(3), func(a, b, c byte) []byte { return []byte{a, b, c} })
		pos, v := run(p, []byte{1, 2, 3, 4}).Unwrap()
		assert.Equal(t, []byte{1, 2, 3}, v)
		assert.Equal(t, 3, pos.Offset())

		pos, _ = run(p, []byte{1, 2, 4}).UnwrapErr()
		assert.Equal(t, 2, pos.Offset())
	})
}

func TestDriverState(t *testing.T) {
	d := parse.WithState(0)
	counting := func(d *parse.Driver[int], pos bytePos) parse.Progress[bytePos, byte, testError] {
		d.State++
		return parse.Failure[byte](pos, testError{})
	}
	r := parse.Optional(counting)(d, slice.New([]byte{1}))
	assert.True(t, r.IsOk())
	assert.Equal(t, 1, d.State, "state is not rolled back")
}

func TestMaybe(t *testing.T) {
	assert.Equal(t, 3, parse.None[int]().Or(3))
	assert.Equal(t, 1, parse.Some(1).Or(3))
	assert.True(t, parse.Some(0).IsSome())
}

func TestOffset(t *testing.T) {
	assert.Equal(t, -1, parse.Offset(1).Compare(2))
	assert.Equal(t, 0, parse.Offset(2).Compare(2))
	assert.Equal(t, 1, parse.Offset(3).Compare(2))
}
