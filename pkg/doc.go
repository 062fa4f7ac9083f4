// Package pkg provides the libraries of the typeset engine.
//
// # Overview
//
// Typeset solves the document-layout problem for source code: a tree
// of text fragments glued by typed composition operators compiles into
// a width-independent document, and a greedy renderer fits that
// document to a buffer width by selectively turning soft seams into
// line breaks. The pkg directory is organized into three areas:
//
//  1. Core engine - [layout], [layout/compile], [doc]
//  2. Surface and orchestration - [lang], [pipeline], [io]
//  3. Infrastructure - [cache], [errors], [observability], [buildinfo]
//
// # Data Flow
//
//	source ──lang──▶ layout ──compile──▶ doc ──render──▶ text
//
// The core engine is pure: no I/O, no global state, no knowledge of
// the target width before render time. Everything stateful (caching,
// logging, configuration) lives in the orchestration and
// infrastructure layers, so embedding programs can use the engine
// directly with none of it.
package pkg
