// Package naming converts identifier-like names to kebab-case.
//
// The conversion is a single pass over character classes (lower, upper,
// digit, other). A hyphen is inserted before position i when either:
//
//   - s[i-1] is a lowercase letter or digit and s[i] is uppercase
//     ("firstName" -> "first-Name"), or
//   - s[i-1] and s[i] are uppercase and s[i+1] is lowercase, which ends an
//     acronym run right before a capitalised word
//     ("XMLHttpRequest" -> "XML-Http-Request").
//
// The result is then lowercased. A pure acronym run with no lowercase letter
// after its last capital stays joined: "XMLHTTPSConnection" becomes
// "xmlhttps-connection" and "getXMLHTTPRequest" becomes "get-xmlhttp-request".
package naming
