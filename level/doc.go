// Package level reads and writes level documents and toggles their track
// between the legacy and mesh encodings.
//
// A level file is a JSON object. Its track lives either in "pathData"
// (legacy string) or in "angleData" (mesh angle list); every other key
// is carried through untouched. Files written by the game often start
// with a UTF-8 BOM and contain trailing commas, both of which Decode
// accepts.
//
// Convert mirrors the editor's conversion button: a mesh level becomes
// legacy, a legacy level becomes mesh. A mesh track that cannot be
// collapsed yields a *ConversionError naming the first bad floor, and
// Message renders it for the user in English or Korean.
package level
