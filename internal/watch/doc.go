// Package watch rebuilds the catalog when law files change.
//
// The scan root and its subdirectories are watched with fsnotify. Events are
// debounced; when the quiet period ends the set of law files is fingerprinted
// (relative path, size and modification time) and the catalog is rebuilt only
// if the fingerprint moved. Events on hidden files, which include the
// writer's temporary files, and on ignored paths such as the catalog itself
// never schedule a rebuild.
package watch
