package cache

const ReleaseSource = releaseSource
