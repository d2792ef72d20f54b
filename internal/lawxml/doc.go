// Package lawxml decodes e-Gov law XML documents into a small document model.
//
// # Document shape
//
// Only the parts of the standard law schema the catalog needs are modelled:
//
//	<Law Era="Showa" Year="22" Num="049" LawType="Act" Lang="ja"
//	     PromulgateMonth="04" PromulgateDay="16">
//	  <LawNum>昭和二十二年法律第四十九号</LawNum>
//	  <LawBody>
//	    <LawTitle Kana="ろうどうきじゅんほう">労働基準法</LawTitle>
//	    ...
//	  </LawBody>
//	</Law>
//
// The whole document is read, so markup errors anywhere in the body are
// reported, not just errors in the header. Ruby readings (<Rt>) are dropped
// from titles and law numbers; the base text is kept.
//
// # Encodings
//
// Documents are UTF-8. A document that declares another encoding in its XML
// prolog is transcoded through golang.org/x/text (Shift_JIS and EUC-JP both
// occur in older exports).
//
// # Strict mode
//
// When a parser is built with WithSchema, each document is validated against
// the XSD before decoding, using github.com/jacoelho/xsd.
package lawxml
