// Package parallel は行単位のループを CPU コア数に応じて分割実行します。
// 各ワーカーは互いに重ならない範囲 [start, end) だけを書き込むため、
// 結果は逐次実行と同一になります。呼び出しは全ワーカーの完了まで戻りません。
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold は並列化を始める最小の行数です。
// これより小さい入力ではゴルーチン起動のコストが上回る。
const DefaultThreshold = 256

// Workers は使用するワーカー数を返します。
func Workers(items int) int {
	n := runtime.GOMAXPROCS(0)
	if n > items {
		n = items
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Parallelize は items を連続した範囲に分割し、fn を各範囲に対して並列に実行します。
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	numWorkers := Workers(items)
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunkSize {
		end := min(start+chunkSize, items)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold は items が threshold を超える場合のみ並列化します。
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// ForEachRow は各行インデックスについて fn を呼びます。
func ForEachRow(rows int, fn func(i int)) {
	ParallelizeWithThreshold(rows, DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}
