package archival

// NoOpBackend fails every operation. Archives use it when no backend is
// attached and when a group or entry could not be addressed, so traversal
// beneath a missing scope stops at the first call.
type NoOpBackend struct {
	BaseBackend
	NoHints
}

var _ Backend = (*NoOpBackend)(nil)

func (*NoOpBackend) Name() string                            { return "NOOP" }
func (*NoOpBackend) CreateGroup(string, bool) Backend        { return nil }
func (*NoOpBackend) CreateSeriesEntry(string, bool) Backend  { return nil }
func (*NoOpBackend) GetSeriesSize(string, *int) bool         { return false }
func (*NoOpBackend) SetSeriesSize(string, int) bool          { return false }
func (*NoOpBackend) GetEntryNames(*[]string) bool            { return false }
func (*NoOpBackend) SetEntryNames([]string) bool             { return false }
func (*NoOpBackend) InlineSeriesVerbosity() uint8            { return 0 }
func (*NoOpBackend) WriteConditional(bool, bool) bool        { return false }
func (*NoOpBackend) Get(string, any) bool                    { return false }
func (*NoOpBackend) Set(string, any) bool                    { return false }
