package common

// DibuildVersion is the current dibuild version as a string.
const DibuildVersion string = "0.1.0"

// ManifestFileExt is the file extension of a debug manifest.
const ManifestFileExt string = ".toml"

// LLVMFileExt is the file extension of an emitted LLVM module.
const LLVMFileExt string = ".ll"
