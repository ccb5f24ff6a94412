package reports

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"io"
	"strings"

	// Decoders for sizing evidence photos to their placeholders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Slide geometry in EMU (914400 per inch), 16:9 canvas.
const (
	slideCX = 12192000
	slideCY = 6858000

	marginX = 457200 // 0.5"

	// Fixed evidence placeholder grid: three columns, bottom half of the
	// slide. Positions never move with occupancy.
	slotW  = 3292200 // 3.6"
	slotH  = 2560320 // 2.8"
	slotY  = 3657600 // 4.0"
	slotX0 = 457200
	slotX1 = 4480560
	slotX2 = 8503920

	labelH = 274320 // 0.3"
)

var slotXs = [3]int{slotX0, slotX1, slotX2}

type pptxImage struct {
	name string // ppt/media/imageN.ext
	data []byte
}

// WritePPTX serializes a deck as a 16:9 OOXML presentation. Slide order is
// deterministic: the deck order is the file order.
func WritePPTX(w io.Writer, deck Deck) error {
	zw := zip.NewWriter(w)

	var images []pptxImage
	slideXMLs := make([]string, len(deck.Slides))
	slideRels := make([]string, len(deck.Slides))

	for i, slide := range deck.Slides {
		xmlBody, rels, media := renderSlide(slide, len(images))
		images = append(images, media...)
		slideXMLs[i] = xmlBody
		slideRels[i] = rels
	}

	files := map[string]string{
		"[Content_Types].xml":                      contentTypesXML(len(deck.Slides), images),
		"_rels/.rels":                              rootRelsXML,
		"ppt/presentation.xml":                     presentationXML(len(deck.Slides)),
		"ppt/_rels/presentation.xml.rels":          presentationRelsXML(len(deck.Slides)),
		"ppt/slideMasters/slideMaster1.xml":        slideMasterXML,
		"ppt/slideMasters/_rels/slideMaster1.xml.rels": slideMasterRelsXML,
		"ppt/slideLayouts/slideLayout1.xml":        slideLayoutXML,
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels": slideLayoutRelsXML,
		"ppt/theme/theme1.xml":                     themeXML,
	}
	for i := range deck.Slides {
		files[fmt.Sprintf("ppt/slides/slide%d.xml", i+1)] = slideXMLs[i]
		files[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1)] = slideRels[i]
	}

	// Zip entries in a fixed order so identical decks produce identical bytes.
	names := make([]string, 0, len(files))
	names = append(names, "[Content_Types].xml", "_rels/.rels", "ppt/presentation.xml", "ppt/_rels/presentation.xml.rels")
	for i := range deck.Slides {
		names = append(names, fmt.Sprintf("ppt/slides/slide%d.xml", i+1), fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1))
	}
	names = append(names,
		"ppt/slideMasters/slideMaster1.xml", "ppt/slideMasters/_rels/slideMaster1.xml.rels",
		"ppt/slideLayouts/slideLayout1.xml", "ppt/slideLayouts/_rels/slideLayout1.xml.rels",
		"ppt/theme/theme1.xml")

	for _, name := range names {
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		if _, err := f.Write([]byte(files[name])); err != nil {
			return err
		}
	}
	for _, img := range images {
		f, err := zw.Create(img.name)
		if err != nil {
			return err
		}
		if _, err := f.Write(img.data); err != nil {
			return err
		}
	}

	return zw.Close()
}

// renderSlide produces the slide XML, its relationship part and any media
// files it embeds. mediaOffset numbers media files across the whole deck.
func renderSlide(slide Slide, mediaOffset int) (string, string, []pptxImage) {
	var shapes strings.Builder
	var rels strings.Builder
	var media []pptxImage

	shapeID := 2
	relID := 2 // rId1 is the layout

	switch slide.Kind {
	case SlideCover:
		shapes.WriteString(textBox(shapeID, marginX, 1828800, 11277600, 914400, slide.Title, 3600, true, "0F172A"))
		shapeID++
		shapes.WriteString(textBox(shapeID, marginX, 2743200, 11277600, 457200, slide.Subtitle, 1800, false, "EA580C"))
		shapeID++
		shapes.WriteString(textBox(shapeID, marginX, 3200400, 11277600, 457200,
			fmt.Sprintf("%d Registros Consolidados", slide.RecordCount), 1400, false, "1E293B"))

	case SlideOverview:
		shapes.WriteString(textBox(shapeID, marginX, 731520, 11277600, 640080, strings.ToUpper(slide.RecordTitle), 2400, true, "EA580C"))
		shapeID++
		meta := []string{
			fmt.Sprintf("LOCAL: %s (%s)", slide.Municipality, slide.Region),
			fmt.Sprintf("TÉCNICO: %s", slide.Technician),
			fmt.Sprintf("DATA: %s", slide.Date),
			fmt.Sprintf("NATUREZA: %s", slide.Nature),
		}
		y := 1371600
		for _, line := range meta {
			shapes.WriteString(textBox(shapeID, marginX, y, 11277600, 274320, line, 1200, false, "1E293B"))
			shapeID++
			y += 274320
		}
		desc := slide.Description
		if desc == "" {
			desc = "Nenhuma descrição macro informada."
		}
		shapes.WriteString(panel(shapeID, marginX, 2926080, 11277600, 2560320, "F1F5F9", "CBD5E1"))
		shapeID++
		shapes.WriteString(textBox(shapeID, marginX+91440, 3017520, 11094720, 2377440, desc, 1100, false, "1E293B"))

	case SlideStage:
		shapes.WriteString(textBox(shapeID, marginX, 731520, 11277600, 548640, fmt.Sprintf("ETAPA: %s", slide.StageName), 2000, true, "EA580C"))
		shapeID++
		desc := slide.StageDesc
		if desc == "" {
			desc = "Descrição técnica da etapa pendente."
		}
		shapes.WriteString(textBox(shapeID, marginX, 1371600, 11277600, 1828800, desc, 1200, false, "1E293B"))
		shapeID++

		for i, slot := range slide.Slots {
			x := slotXs[i]
			shapes.WriteString(textBox(shapeID, x, slotY-labelH, slotW, labelH, slot.Label, 1100, true, "64748B"))
			shapeID++

			rendered := false
			if slot.Occupied() {
				if mime, raw, ok := slot.Image.DecodePayload(); ok {
					ext := mediaExt(mime)
					if ext != "" {
						name := fmt.Sprintf("ppt/media/image%d.%s", mediaOffset+len(media)+1, ext)
						media = append(media, pptxImage{name: name, data: raw})
						rid := fmt.Sprintf("rId%d", relID)
						relID++
						rels.WriteString(fmt.Sprintf(`<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/%s"/>`, rid, name[len("ppt/media/"):]))
						fx, fy, fw, fh := containFit(raw, x, slotY, slotW, slotH)
						shapes.WriteString(picture(shapeID, rid, fx, fy, fw, fh))
						shapeID++
						rendered = true
					}
				}
			}
			if !rendered {
				// Corrupt payloads degrade to the pending placeholder;
				// the slot position never shifts or collapses.
				shapes.WriteString(pendingPlaceholder(shapeID, x, slotY, slotW, slotH))
				shapeID++
			}
		}
	}

	slideXML := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>%s</p:spTree></p:cSld><p:clrMapOvr><a:overrideClrMapping bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/></p:clrMapOvr></p:sld>`, shapes.String())

	relsXML := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>%s</Relationships>`, rels.String())

	return slideXML, relsXML, media
}

// containFit scales an image into a placeholder box preserving aspect ratio,
// centered. Undecodable dimensions fall back to filling the box.
func containFit(raw []byte, boxX, boxY, boxW, boxH int) (x, y, w, h int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return boxX, boxY, boxW, boxH
	}
	scaleW := float64(boxW) / float64(cfg.Width)
	scaleH := float64(boxH) / float64(cfg.Height)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	w = int(float64(cfg.Width) * scale)
	h = int(float64(cfg.Height) * scale)
	x = boxX + (boxW-w)/2
	y = boxY + (boxH-h)/2
	return x, y, w, h
}

func mediaExt(mime string) string {
	switch mime {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpeg"
	case "image/gif":
		return "gif"
	}
	return ""
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func textBox(id, x, y, w, h int, text string, size int, bold bool, color string) string {
	b := "0"
	if bold {
		b = "1"
	}
	// Multi-line text becomes one paragraph per line.
	var paras strings.Builder
	for _, line := range strings.Split(text, "\n") {
		paras.WriteString(fmt.Sprintf(`<a:p><a:r><a:rPr lang="pt-BR" sz="%d" b="%s" dirty="0"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:rPr><a:t>%s</a:t></a:r></a:p>`, size, b, color, escapeXML(line)))
	}
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr><p:txBody><a:bodyPr wrap="square" anchor="t"/><a:lstStyle/>%s</p:txBody></p:sp>`, id, id, x, y, w, h, paras.String())
}

func panel(id, x, y, w, h int, fill, line string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Panel %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:ln w="9525"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:ln></p:spPr><p:txBody><a:bodyPr/><a:lstStyle/><a:p/></p:txBody></p:sp>`, id, id, x, y, w, h, fill, line)
}

// pendingPlaceholder renders the visually distinct "evidence pending" box an
// empty slot shows.
func pendingPlaceholder(id, x, y, w, h int) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Pending %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:solidFill><a:srgbClr val="F1F5F9"/></a:solidFill><a:ln w="12700"><a:solidFill><a:srgbClr val="CBD5E1"/></a:solidFill><a:prstDash val="dash"/></a:ln></p:spPr><p:txBody><a:bodyPr anchor="ctr"/><a:lstStyle/><a:p><a:pPr algn="ctr"/><a:r><a:rPr lang="pt-BR" sz="1100" i="1"><a:solidFill><a:srgbClr val="94A3B8"/></a:solidFill></a:rPr><a:t>Evidência pendente</a:t></a:r></a:p></p:txBody></p:sp>`, id, id, x, y, w, h)
}

func picture(id int, rid string, x, y, w, h int) string {
	return fmt.Sprintf(`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Evidencia %d"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr><p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill><p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`, id, id, rid, x, y, w, h)
}

func contentTypesXML(slideCount int, images []pptxImage) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Default Extension="png" ContentType="image/png"/><Default Extension="jpeg" ContentType="image/jpeg"/><Default Extension="gif" ContentType="image/gif"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := 1; i <= slideCount; i++ {
		b.WriteString(fmt.Sprintf(`<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i))
	}
	b.WriteString(`</Types>`)
	return b.String()
}

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/></Relationships>`

func presentationXML(slideCount int) string {
	var ids strings.Builder
	for i := 1; i <= slideCount; i++ {
		ids.WriteString(fmt.Sprintf(`<p:sldId id="%d" r:id="rId%d"/>`, 255+i, i+1))
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst><p:sldIdLst>%s</p:sldIdLst><p:sldSz cx="%d" cy="%d"/><p:notesSz cx="%d" cy="%d"/></p:presentation>`, ids.String(), slideCX, slideCY, slideCY, slideCX)
}

func presentationRelsXML(slideCount int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := 1; i <= slideCount; i++ {
		b.WriteString(fmt.Sprintf(`<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, i+1, i))
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

const slideMasterXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:bg><p:bgPr><a:solidFill><a:srgbClr val="F8FAFC"/></a:solidFill><a:effectLst/></p:bgPr></p:bg><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr></p:spTree></p:cSld><p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/><p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst></p:sldMaster>`

const slideMasterRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/></Relationships>`

const slideLayoutXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" type="blank"><p:cSld name="Em Branco"><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr></p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`

const slideLayoutRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/></Relationships>`

const themeXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="HV"><a:themeElements><a:clrScheme name="HV"><a:dk1><a:srgbClr val="0F172A"/></a:dk1><a:lt1><a:srgbClr val="FFFFFF"/></a:lt1><a:dk2><a:srgbClr val="1E293B"/></a:dk2><a:lt2><a:srgbClr val="F8FAFC"/></a:lt2><a:accent1><a:srgbClr val="EA580C"/></a:accent1><a:accent2><a:srgbClr val="10B981"/></a:accent2><a:accent3><a:srgbClr val="F59E0B"/></a:accent3><a:accent4><a:srgbClr val="64748B"/></a:accent4><a:accent5><a:srgbClr val="CBD5E1"/></a:accent5><a:accent6><a:srgbClr val="94A3B8"/></a:accent6><a:hlink><a:srgbClr val="EA580C"/></a:hlink><a:folHlink><a:srgbClr val="9A3412"/></a:folHlink></a:clrScheme><a:fontScheme name="HV"><a:majorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont><a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont></a:fontScheme><a:fmtScheme name="HV"><a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst><a:lnStyleLst><a:ln w="9525"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="28575"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst><a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst><a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst></a:fmtScheme></a:themeElements></a:theme>`
