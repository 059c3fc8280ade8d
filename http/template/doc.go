/*
Package template parses HTML templates from a stack of [io/fs.FS].

A [*Parser] looks up each file in the filesystems it was constructed with, in order,
falling back to the templates embedded in this package under tmpl/.
An application thereby overrides tmpl/index.html or tmpl/error.html
by providing its own file at the same path.

Parsed templates are cached per set of files.
[WithReload] disables the cache so edits on disk show up on the next request.
*/
package template
