// Package logsink provides the single process-wide logging sink permitted by
// spec §5 and §9's "replace global singletons" redesign note: every other
// component reaches structured logging through logsink.L(), never by holding
// its own *zerolog.Logger. Attach/detach is atomic so concurrent partitions
// (§5's "independent subgraphs... evaluated in parallel threads") can log
// without racing on sink replacement.
package logsink
