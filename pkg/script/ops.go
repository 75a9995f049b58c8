package script

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/pmkol/linkx/pkg/link"
	"github.com/pmkol/linkx/pkg/store"
)

type opFunc func(ctx context.Context, r *Runner, op *OpConfig) error

var opFuncs = map[string]opFunc{
	"new":       opNew,
	"from_elem": opFromElem,
	"push":      opPush,
	"push_back": opPushBack,
	"pop":       opPop,
	"pop_back":  opPopBack,
	"front":     opFront,
	"back":      opBack,
	"len":       opLen,
	"insert":    opInsert,
	"delete":    opDelete,
	"get":       opGet,
	"set":       opSet,
	"concat":    opConcat,
	"split_off": opSplitOff,
	"take":      opTake,
	"equal":     opEqual,
	"print":     opPrint,
	"dump":      opDump,
	"each":      opEach,
	"retain":    opRetain,
	"dup":       opDup,
	"drain":     opDrain,
	"save":      opSave,
	"load":      opLoad,
}

// Ops returns the names of all supported ops.
func Ops() []string {
	names := make([]string, 0, len(opFuncs))
	for name := range opFuncs {
		names = append(names, name)
	}
	return names
}

var errNoStore = errors.New("no snapshot store configured")

// catchIndex turns the *link.IndexError panic of indexed access into
// an error. Other panics are propagated.
func catchIndex(f func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			ie, ok := p.(*link.IndexError)
			if !ok {
				panic(p)
			}
			err = ie
		}
	}()
	f()
	return nil
}

func opNew(_ context.Context, r *Runner, op *OpConfig) error {
	r.lists[op.List] = link.New[any]()
	return nil
}

func opFromElem(_ context.Context, r *Runner, op *OpConfig) error {
	r.lists[op.List] = link.FromElem(normalize(op.Value), op.Count)
	return nil
}

func opPush(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	l.Push(normalize(op.Value))
	return nil
}

func opPushBack(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	l.PushBack(normalize(op.Value))
	return nil
}

func opPop(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	r.printOpt(l.Pop())
	return nil
}

func opPopBack(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	r.printOpt(l.PopBack())
	return nil
}

func opFront(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	r.printOpt(l.Front())
	return nil
}

func opBack(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	r.printOpt(l.Back())
	return nil
}

func opLen(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	r.printf("%d\n", l.Len())
	return nil
}

func opInsert(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	if l.Insert(op.Index, normalize(op.Value)) == nil {
		return fmt.Errorf("cannot insert at %d into list of length %d", op.Index, l.Len())
	}
	return nil
}

func opDelete(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	r.printOpt(l.Delete(op.Index))
	return nil
}

func opGet(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	return catchIndex(func() {
		r.printf("%v\n", l.Get(op.Index))
	})
}

func opSet(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	return catchIndex(func() {
		l.Set(op.Index, normalize(op.Value))
	})
}

func opConcat(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	other, err := r.get(op.Other)
	if err != nil {
		return err
	}
	if l == other {
		return fmt.Errorf("cannot concat list %q to itself", op.List)
	}
	l.Concat(other)
	return nil
}

func opSplitOff(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	if len(op.Into) == 0 {
		return errors.New("missing into")
	}
	r.lists[op.Into] = l.SplitOff(op.Index)
	return nil
}

func opTake(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	if len(op.Into) == 0 {
		return errors.New("missing into")
	}
	r.lists[op.Into] = l.Take()
	return nil
}

func opEqual(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	other, err := r.get(op.Other)
	if err != nil {
		return err
	}
	r.printf("%t\n", link.EqualFunc(l, other, func(a, b any) bool { return reflect.DeepEqual(a, b) }))
	return nil
}

func opPrint(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	r.printf("%s: %v\n", op.List, l)
	return nil
}

func opDump(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(r.opts.Out)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]any{op.List: l.Slice()}); err != nil {
		return fmt.Errorf("failed to encode list: %w", err)
	}
	return enc.Close()
}

// opEach replaces every element with the value of op.Expr.
func opEach(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	e, err := newElemExpr(op.Expr)
	if err != nil {
		return err
	}

	// Evaluate everything first so a failing element leaves l unchanged.
	n := l.Len()
	out := make([]any, 0, n)
	for i, v := range l.All() {
		nv, err := e.eval(v, i, n)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, nv)
	}

	i := 0
	for p := range l.Pointers() {
		*p = out[i]
		i++
	}
	return nil
}

// opRetain keeps the elements for which op.Expr is true.
func opRetain(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	e, err := newElemExpr(op.Expr)
	if err != nil {
		return err
	}

	n := l.Len()
	keep := make([]bool, 0, n)
	for i, v := range l.All() {
		ok, err := e.match(v, i, n)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		keep = append(keep, ok)
	}

	i := 0
	for ; i < len(keep) && !keep[i]; i++ {
		l.Pop()
	}
	if i == len(keep) {
		return nil
	}

	it := l.IterMut()
	defer it.Close()
	it.Next()
	for i++; i < len(keep); i++ {
		if keep[i] {
			it.Next()
		} else {
			it.RemoveNext()
		}
	}
	return nil
}

// opDup inserts a copy of every element right after it.
func opDup(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	it := l.IterMut()
	defer it.Close()
	for {
		p, ok := it.Next()
		if !ok {
			return nil
		}
		if err := it.InsertNext(*p); err != nil {
			return err
		}
		it.Next()
	}
}

func opDrain(_ context.Context, r *Runner, op *OpConfig) error {
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	for v := range l.Drain() {
		r.printf("%v\n", v)
	}
	return nil
}

func snapshotKey(op *OpConfig) string {
	if len(op.Key) > 0 {
		return op.Key
	}
	return op.List
}

func opSave(ctx context.Context, r *Runner, op *OpConfig) error {
	if r.opts.Store == nil {
		return errNoStore
	}
	l, err := r.get(op.List)
	if err != nil {
		return err
	}
	b, err := store.Encode(l.Slice())
	if err != nil {
		return err
	}
	return r.opts.Store.Save(ctx, snapshotKey(op), b)
}

func opLoad(ctx context.Context, r *Runner, op *OpConfig) error {
	if r.opts.Store == nil {
		return errNoStore
	}
	b, err := r.opts.Store.Load(ctx, snapshotKey(op))
	if err != nil {
		return err
	}
	vs, err := store.Decode(b)
	if err != nil {
		return err
	}
	r.lists[op.List] = link.FromSlice(vs)
	return nil
}
