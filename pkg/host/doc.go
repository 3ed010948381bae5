// Package host exposes the bridge to a UI layer through named method calls.
//
// Method names follow the snake_case host surface (get_info, ensure_exists,
// read, write, reset, get_cached). The names used by the earlier pywebview
// front end (get_data_file_info, ensure_data_file, read_data_file,
// write_data_file, reset_data_file, get_initial_data) are accepted as aliases.
//
// The file-handle surface answers with result records: get_saved_file_handle
// reports {configured, name}; save_file_handle creates a missing document;
// clear_saved_file_handle deletes it; request_existing_data_file fails with
// kind not_found when there is no document; request_new_data_file replaces
// the document with "{}".
//
// Serve speaks line-delimited JSON over any reader/writer pair, typically the
// stdio of a child process embedded by the window host:
//
//	{"id":1,"method":"write","args":["{\"students\":[]}"]}
//	{"id":1,"result":{"success":true,"name":"gestor-classes-data.json"}}
package host
