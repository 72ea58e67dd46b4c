/*
Package fileinfos reports the OLE property sets stored in structured-storage
(compound) documents such as legacy Office files, MSI packages and Outlook
messages.

# Quick Start

Print every property set of a document:

	text, err := fileinfos.Properties("Budget.xls", nil)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Print(text)

The report has one header line per property set followed by one line per
property:

	Budget.xls {F29F85E0-4FF9-1068-AB91-08002B27B3D9}
	  Title"Q3 Budget"
	  Pages12

Nested storages are visited depth first and their sets are reported under
paths such as Budget.xls\ObjectPool\_1.

# Structured Results

Collect returns the same text plus a structured copy of every set and the
failures met along the way:

	res, err := fileinfos.Collect("Budget.xls", nil)
	for _, set := range res.Sets {
	    fmt.Println(set.Path, set.FMTID)
	}
	for _, d := range res.Diagnostics {
	    log.Println(d)
	}

# Error Handling

Only a failure to open the document is returned as an error. Damage deeper
in the file truncates the affected part of the report and is recorded as a
Diagnostic carrying an STG_E_* status code.
*/
package fileinfos
