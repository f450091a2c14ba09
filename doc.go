// Package archival is a backend-agnostic serialization framework.
//
// Application code describes its data once, through Archive.Serialize, and the
// same description reads or writes JSON documents, MessagePack streams, or an
// immediate-mode editor UI depending on the Backend attached:
//
//	func (t *Transform) ArchiveValue(ar archival.Archive, name string) bool {
//		g := ar.CreateGroup(name)
//		return archival.All(
//			g.Serialize("position", &t.Position),
//			g.Serialize("rotation", archival.WithDefault(&t.Rotation, archival.IdentityQuaternion)),
//			g.Serialize("mode", archival.EnumNames(&t.Mode, modeNames)),
//		)
//	}
//
// A value's type picks its strategy in a fixed order: the primitive kinds a
// Backend stores directly, the Archivable method, a function registered with
// RegisterFunc, an Archiver registered with Specialize, and finally slices,
// arrays and string-keyed maps of any of those. Anything else panics with
// ErrUnresolvedType; CheckResolvable catches that up front.
//
// Layout:
//
//   - document: ordered JSON value tree, parse drivers, YAML conversion.
//   - backend/jsonbackend: the JSON backend with inline folding.
//   - backend/msgpackbackend: positional binary backend.
//   - backend/interactive: editor backend over a widget Toolkit.
//   - cmd/archival: convert, save and inspect documents.
//   - examples/scene: sample types using every strategy.
//
// Operations report success as booleans. Aggregates combine their members with
// All (or &&) and decide their own partial-success policy.
package archival
