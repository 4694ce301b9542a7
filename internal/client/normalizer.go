package client

// PathNormalizer turns host paths into volume-qualified service paths.
type PathNormalizer struct {
	volume string
}

// NewPathNormalizer binds a normalizer to volume.
func NewPathNormalizer(volume string) PathNormalizer {
	return PathNormalizer{volume: volume}
}

// Volume returns the bound volume name.
func (n PathNormalizer) Volume() string { return n.volume }

// Normalize returns "<volume>:<absolute path>". The path is not otherwise
// validated.
func (n PathNormalizer) Normalize(path string) string {
	return n.volume + ":" + makeAbsolute(path)
}

// makeAbsolute returns path unchanged: FUSE hosts hand over paths relative
// to the mount root that already begin with "/".
// TODO: resolve relative paths against the mount root once a host that
// passes them is supported.
func makeAbsolute(path string) string {
	return path
}
