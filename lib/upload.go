package lib

// UploadURLPrefix is the public path under which stored product images are
// served. It matches the on-disk layout of the upload directory.
const UploadURLPrefix = "uploads/Products"
