/*
Package fuse adapts PacioFS RPCs to a FUSE host.

Operations is the host-neutral core: each callback takes a path relative to
the mount root, calls the client, and returns 0, a byte count, or a negated
host errno. Modes are translated between host and wire layout in both
directions. Outputs such as attributes or file handles are only written on
success.

Two host bindings sit on top of Operations:

  - go-fuse (default): an inode tree whose nodes resolve their path and
    delegate to Operations. "." and ".." are added by go-fuse itself.
  - cgofuse (build tag cgofuse): the path based API, mounted through
    FileSystemHost with the FuseOptions rendered as "-o" arguments.

MountManager validates the mount point, mounts through the compiled-in
binding, and unmounts on request:

	ops := fuse.NewOperations(posixClient)
	mm := fuse.NewMountManager(ops, cfg.Mount, logger)
	if err := mm.Mount(ctx); err != nil {
		return err
	}
	defer mm.Unmount()
	mm.Wait()
*/
package fuse
