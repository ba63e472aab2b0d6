package v1

// BasePath is the mount point of the auth API
const BasePath = "/api/auth"
