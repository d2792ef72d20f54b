// Package locator discovers law documents in an e-Gov bulk download tree.
//
// The bulk download unpacks into one directory per law, each holding one
// XML file per revision, named
//
//	{LawID}_{YYYYMMDD}_{AmendmentLawID}.xml
//
// The locator walks the tree recursively, keeps only files following that
// convention, and derives the law id and revision key from the name. Files
// with other names are skipped without error. A root that is missing or
// cannot be listed is fatal and reported as a lawcat.DiscoveryError.
//
// The locator is filesystem-agnostic through filesystem.FileSystemProvider,
// so tests can run it against an in-memory tree.
package locator
