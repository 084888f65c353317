package sheaf

// requestLessOrEqual returns true if a should render before or at the same
// position as b. Comparing seq with <= keeps the sort stable.
func requestLessOrEqual(a, b *DrawRequest) bool {
	if a.opts.Order != b.opts.Order {
		return a.opts.Order < b.opts.Order
	}
	return a.seq <= b.seq
}

// sortRequests stable-sorts b.pending by (Order, seq) using b.sortBuf as
// scratch space. Bottom-up merge sort: no allocations once the scratch buffer
// has reached its high-water mark.
func (b *SpriteBatch) sortRequests() {
	n := len(b.pending)
	if n <= 1 {
		return
	}
	if b.alreadySorted() {
		return
	}
	if cap(b.sortBuf) < n {
		b.sortBuf = make([]DrawRequest, n)
	}
	b.sortBuf = b.sortBuf[:n]

	src := b.pending
	dst := b.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(src, dst, lo, mid, hi)
		}
		src, dst = dst, src
		swapped = !swapped
	}

	if swapped {
		copy(b.pending, b.sortBuf)
	}
}

// alreadySorted reports whether pending is in render order, which is the
// common case when every request uses the same Order.
func (b *SpriteBatch) alreadySorted() bool {
	for i := 1; i < len(b.pending); i++ {
		if !requestLessOrEqual(&b.pending[i-1], &b.pending[i]) {
			return false
		}
	}
	return true
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []DrawRequest, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if requestLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
