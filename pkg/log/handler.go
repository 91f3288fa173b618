package log

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// installErrorMarshalers は zerolog のグローバルなエラーマーシャラーを設定します。
// Err() に渡されたエラーがスタックトレースを持っていれば StacktraceKey として出力されます。
func installErrorMarshalers() {
	zerolog.ErrorStackFieldName = StacktraceKey
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		if st := extractStacktrace(err); st != "" {
			return st
		}
		return nil
	}
}

// extractStacktrace は cockroachdb/errors が付与したスタックトレースを取り出します。
func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}

// errorDetail はエラーチェーンの中から構造化情報を持つエラーを探します。
// pkg/errors の型付きエラーはすべて zerolog.LogObjectMarshaler を実装しています。
func errorDetail(err error) (zerolog.LogObjectMarshaler, bool) {
	var m zerolog.LogObjectMarshaler
	if errors.As(err, &m) {
		return m, true
	}
	return nil, false
}
