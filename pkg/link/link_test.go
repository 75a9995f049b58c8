package link

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkLen walks the chain and compares it with the cached length.
func checkLen[T any](t *testing.T, l *Link[T]) {
	t.Helper()
	n := 0
	for range l.Values() {
		n++
	}
	require.Equal(t, n, l.Len(), "cached length does not match the chain")
}

func TestLink_zeroValue(t *testing.T) {
	var l Link[int]
	require.True(t, l.IsEmpty())
	_, ok := l.Front()
	require.False(t, ok)
	_, ok = l.Back()
	require.False(t, ok)
	require.Nil(t, l.FrontMut())
	require.Nil(t, l.BackMut())
	_, ok = l.Pop()
	require.False(t, ok)
	_, ok = l.PopBack()
	require.False(t, ok)

	l.PushBack(1)
	require.Equal(t, []int{1}, l.Slice())
}

func TestLink_nil(t *testing.T) {
	var l *Link[int]
	require.Zero(t, l.Len())
	require.True(t, l.IsEmpty())
	_, ok := l.Front()
	require.False(t, ok)
	_, ok = l.Back()
	require.False(t, ok)
	require.Nil(t, l.FrontMut())
	require.Nil(t, l.BackMut())
	require.Empty(t, l.Slice())
	require.True(t, l.Clone().IsEmpty())
	require.Equal(t, "[]", l.String())
	require.True(t, Equal(l, New[int]()))

	_, ok = l.Iter().Next()
	require.False(t, ok)
	it := l.IterMut()
	_, ok = it.Next()
	require.False(t, ok)
	require.ErrorIs(t, it.InsertNext(1), ErrNoCursor)
	_, ok = l.IntoIter().Next()
	require.False(t, ok)
	for range l.Values() {
		t.Fatal("nil list yielded a value")
	}
	for range l.Drain() {
		t.Fatal("nil list yielded a value")
	}

	require.PanicsWithError(t, (&IndexError{Index: 0, Len: 0}).Error(), func() { l.Get(0) })

	// Changing a nil list is a programming error.
	require.Panics(t, func() { l.Push(1) })
	require.Panics(t, func() { l.Concat(nil) })
}

func TestLink_PushPop(t *testing.T) {
	l := Of(0, 1, 2)
	l.Push(-1)
	require.Equal(t, []int{-1, 0, 1, 2}, l.Slice())

	v, ok := l.Pop()
	require.True(t, ok)
	require.Equal(t, -1, v)
	require.Equal(t, []int{0, 1, 2}, l.Slice())
	checkLen(t, l)

	for i := 0; i < 100; i++ {
		l.Push(i)
	}
	for i := 99; i >= 0; i-- {
		v, ok := l.Pop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	require.Equal(t, []int{0, 1, 2}, l.Slice())
}

func TestLink_PushBackPopBack(t *testing.T) {
	l := Of(0, 1, 2)
	v, ok := l.PopBack()
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, []int{0, 1}, l.Slice())

	l.PushBack(7)
	v, ok = l.PopBack()
	require.True(t, ok)
	require.Equal(t, 7, v)
	require.Equal(t, 2, l.Len())

	l.PopBack()
	l.PopBack()
	require.True(t, l.IsEmpty())
	_, ok = l.PopBack()
	require.False(t, ok)
	checkLen(t, l)
}

func TestLink_FrontBack(t *testing.T) {
	l := Of(1, 2, 3)
	v, ok := l.Front()
	require.True(t, ok)
	require.Equal(t, 1, v)
	v, ok = l.Back()
	require.True(t, ok)
	require.Equal(t, 3, v)

	*l.FrontMut() = 10
	*l.BackMut() = 30
	require.Equal(t, []int{10, 2, 30}, l.Slice())
}

func TestLink_Insert(t *testing.T) {
	l := Of(0, 1, 2)
	p := l.Insert(2, 3)
	require.NotNil(t, p)
	require.Equal(t, 3, *p)
	require.Equal(t, []int{0, 1, 3, 2}, l.Slice())

	p = l.Insert(0, -1)
	require.NotNil(t, p)
	require.Equal(t, []int{-1, 0, 1, 3, 2}, l.Slice())

	p = l.Insert(l.Len(), 9)
	require.NotNil(t, p)
	require.Equal(t, []int{-1, 0, 1, 3, 2, 9}, l.Slice())

	*p = 8
	v, _ := l.Back()
	require.Equal(t, 8, v)
	checkLen(t, l)
}

func TestLink_Insert_outOfRange(t *testing.T) {
	l := Of(0, 1, 2)
	require.Nil(t, l.Insert(4, 9))
	require.Nil(t, l.Insert(-1, 9))
	require.Equal(t, []int{0, 1, 2}, l.Slice())
	require.Equal(t, 3, l.Len())
}

func TestLink_Insert_thenGet(t *testing.T) {
	for i := 0; i < 5; i++ {
		l := Of(0, 1, 2, 3, 4)
		require.NotNil(t, l.Insert(i, 100))
		require.Equal(t, 100, l.Get(i))
		require.Equal(t, 6, l.Len())
		checkLen(t, l)
	}
}

func TestLink_Delete(t *testing.T) {
	src := []int{0, 1, 2, 3, 4}
	for i := range src {
		l := FromSlice(src)
		v, ok := l.Delete(i)
		require.True(t, ok)
		require.Equal(t, src[i], v)
		require.Equal(t, slices.Delete(slices.Clone(src), i, i+1), l.Slice())
		require.Equal(t, len(src)-1, l.Len())
		checkLen(t, l)
	}

	l := Of(0, 1, 2)
	_, ok := l.Delete(3)
	require.False(t, ok)
	_, ok = l.Delete(-1)
	require.False(t, ok)
	require.Equal(t, []int{0, 1, 2}, l.Slice())
}

func TestLink_Index(t *testing.T) {
	l := Of(1, 2, 3)
	require.Equal(t, 1, l.Get(0))
	require.Equal(t, 2, l.Get(1))
	require.Equal(t, 3, l.Get(2))

	l.Set(1, -1)
	require.Equal(t, -1, l.Get(1))
	require.Equal(t, []int{1, -1, 3}, l.Slice())

	*l.At(2) = 42
	require.Equal(t, 42, l.Get(2))
}

func TestLink_Index_outOfRange(t *testing.T) {
	l := Of(1, 2, 3)
	require.PanicsWithError(t, "index 3 out of range for Link of length 3", func() { l.Get(3) })
	require.PanicsWithError(t, "index -1 out of range for Link of length 3", func() { l.Set(-1, 0) })
	require.PanicsWithError(t, "index 0 out of range for Link of length 0", func() { New[int]().At(0) })

	defer func() {
		ie, ok := recover().(*IndexError)
		require.True(t, ok)
		assert.Equal(t, 5, ie.Index)
		assert.Equal(t, 3, ie.Len)
	}()
	l.Get(5)
}

func TestLink_Concat(t *testing.T) {
	a := Of(1, 2)
	b := Of(3, 4)
	a.Concat(b)
	require.Equal(t, []int{1, 2, 3, 4}, a.Slice())
	require.Equal(t, 4, a.Len())
	require.True(t, b.IsEmpty())
	checkLen(t, a)
	checkLen(t, b)

	e := New[int]()
	e.Concat(a)
	require.Equal(t, []int{1, 2, 3, 4}, e.Slice())
	require.True(t, a.IsEmpty())

	e.Concat(New[int]())
	e.Concat(nil)
	require.Equal(t, 4, e.Len())

	require.PanicsWithValue(t, "link: concat a list to itself", func() { e.Concat(e) })
}

func TestLink_Concat_associative(t *testing.T) {
	left := Of(1, 2)
	left.Concat(Of(3))
	left.Concat(Of(4, 5))

	right := Of(3)
	right.Concat(Of(4, 5))
	other := Of(1, 2)
	other.Concat(right)

	require.True(t, Equal(left, other))
}

func TestLink_SplitOff(t *testing.T) {
	l := Of(1, 2, 3)
	rest := l.SplitOff(0)
	require.Equal(t, []int{1}, l.Slice())
	require.Equal(t, []int{2, 3}, rest.Slice())
	checkLen(t, l)
	checkLen(t, rest)

	l = Of(1, 2, 3)
	rest = l.SplitOff(2)
	require.Equal(t, []int{1, 2, 3}, l.Slice())
	require.True(t, rest.IsEmpty())

	l = Of(1, 2, 3)
	rest = l.SplitOff(1)
	require.Equal(t, []int{1, 2}, l.Slice())
	require.Equal(t, []int{3}, rest.Slice())

	for _, at := range []int{3, 10, -1} {
		l = Of(1, 2, 3)
		rest = l.SplitOff(at)
		require.True(t, rest.IsEmpty())
		require.Equal(t, []int{1, 2, 3}, l.Slice())
		require.Equal(t, 3, l.Len())
	}
}

func TestLink_Take(t *testing.T) {
	a := Of(0, 1, 2)
	b := a.Take()
	require.Equal(t, "[]", a.String())
	require.Equal(t, "[0, 1, 2]", b.String())
	require.Zero(t, a.Len())
	require.Equal(t, 3, b.Len())

	a.Push(5)
	require.Equal(t, []int{0, 1, 2}, b.Slice())
}

func TestLink_Add(t *testing.T) {
	a := Of(1, 2, 3).Add(4)
	require.Equal(t, "[1, 2, 3, 4]", a.String())

	b := Of(5, 6)
	a = a.AddLink(b).Add(7)
	require.Equal(t, "[1, 2, 3, 4, 5, 6, 7]", a.String())
	require.True(t, b.IsEmpty())
}

func TestFromElem(t *testing.T) {
	require.Equal(t, "[-1, -1, -1]", FromElem(-1, 3).String())
	require.True(t, FromElem("x", 0).IsEmpty())
	require.True(t, FromElem("x", -2).IsEmpty())
}

func TestCollect(t *testing.T) {
	l := Collect(slices.Values([]string{"a", "b", "c"}))
	require.Equal(t, []string{"a", "b", "c"}, l.Slice())
	checkLen(t, l)

	src := []int{-1, -1, -1}
	ptrs := func(yield func(*int) bool) {
		for i := range src {
			if !yield(&src[i]) {
				return
			}
		}
	}
	cp := CollectPtr(ptrs)
	require.Equal(t, "[-1, -1, -1]", cp.String())
	cp.Set(0, 5)
	require.Equal(t, -1, src[0])

	require.True(t, Of[int]().IsEmpty())
}

func TestLink_Clone(t *testing.T) {
	a := Of(1, 2, 3)
	b := a.Clone()
	require.True(t, Equal(a, b))
	b.Set(0, 9)
	require.Equal(t, 1, a.Get(0))
}

func TestEqual(t *testing.T) {
	require.True(t, Equal(Of(1, 2, 3), Of(1, 2, 3)))
	require.False(t, Equal(Of(1, 2, 3), Of(1, 2)))
	require.False(t, Equal(Of(1, 2), Of(1, 2, 3)))
	require.False(t, Equal(Of(1, 2, 3), Of(1, 2, 4)))
	require.True(t, Equal(New[int](), nil))
	require.True(t, Equal[int](nil, nil))

	eq := EqualFunc(Of(1, 2), Of("1", "2"), func(i int, s string) bool {
		return string(rune('0'+i)) == s
	})
	require.True(t, eq)
}

func TestLink_lenMatchesIteration(t *testing.T) {
	l := New[int]()
	ops := []func(){
		func() { l.Push(1) },
		func() { l.PushBack(2) },
		func() { l.Insert(1, 3) },
		func() { l.Delete(0) },
		func() { l.PopBack() },
		func() { l.Concat(Of(4, 5, 6)) },
		func() { l.SplitOff(1) },
		func() { l.Insert(9, 0) },
		func() { l.Pop() },
	}
	for _, op := range ops {
		op()
		checkLen(t, l)
	}
}
