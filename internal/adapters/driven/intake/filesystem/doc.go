// Package filesystem implements the document intake on a local directory.
//
// Documents are claimed from the intake directory one at a time, in name
// order, and archived into the processed directory under their original
// name. A fsnotify watcher wakes the poll loop when the directory changes.
package filesystem
