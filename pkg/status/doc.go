/*
Package status owns every filesystem mutation unsize makes.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+-----+
	|  Backup   |           | Write    |
	| (Mirror)  |           | (Atomic) |
	+-----------+           +----------+

🎯 Purpose:
- Reads the live HTML file
- Copies the original to a mirrored path under the backup root
- Writes rewritten content back through a temp file and rename

🔄 Flow:
1. ReadFile returns the current bytes
2. BackupFile copies the file on disk to BackupPath(file)
3. WriteFileAtomic replaces the live file

The caller must not call WriteFileAtomic for a file whose backup failed.

Backup paths mirror the file's path relative to the working directory:

	cwd:         /home/me/site
	file:        public/blog/index.html
	backup root: /tmp/bk
	backup:      /tmp/bk/public/blog/index.html

A file outside the working directory mirrors its absolute path with the
leading separator removed.
*/
package status
