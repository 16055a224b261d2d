/*
Package tagfs implements a tag-addressed persistent store on top of raw
NOR-style flash. Values are bound to short byte-string tags, survive power
loss and re-initialization without corruption, and can be patched in place
whenever the medium's bit-programming constraints allow it.
*/
package tagfs
