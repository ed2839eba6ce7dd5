/*
Package medscan-sheets is the row store gateway for the MedScan vitals pipeline: it
stores patient vitals records in a Google Sheets worksheet and serves them back to
the MedScan web application over a small JSON append/read API.

medscan-sheets can be used from the command line but is really intended to be run as
the 'serve' daemon behind the MedScan OCR front-end, replacing the Apps Script web
app that originally fronted the vitals spreadsheet.

medscan-sheets supports the following commands:

  - authorise, to authorise medscan-sheets to access the Google Sheets spreadsheet
  - serve, to run the append/read HTTP gateway
  - get, to download the vitals worksheet as a TSV file
  - put, to append the records from a TSV file to the vitals worksheet
  - version, to display the current version
*/
package medscan
