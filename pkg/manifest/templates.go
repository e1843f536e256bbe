package manifest

// tplManifest каркас imsmanifest.xml; фрагмент .ItemsXML уже экранирован и вставляется как есть
const tplManifest = `<?xml version="1.0" encoding="UTF-8"?>
<manifest identifier="{{xml .ManifestID}}"
    xmlns="http://www.imsglobal.org/xsd/imsccv1p1/imscp_v1p1"
    xmlns:lom="http://ltsc.ieee.org/xsd/imsccv1p1/LOM/resource"
    xmlns:lomimscc="http://ltsc.ieee.org/xsd/imsccv1p1/LOM/manifest"
    xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
    xsi:schemaLocation="http://www.imsglobal.org/xsd/imsccv1p1/imscp_v1p1 http://www.imsglobal.org/profile/cc/ccv1p1/ccv1p1_imscp_v1p2_v1p0.xsd http://ltsc.ieee.org/xsd/imsccv1p1/LOM/resource http://www.imsglobal.org/profile/cc/ccv1p1/LOM/ccv1p1_lomresource_v1p0.xsd http://ltsc.ieee.org/xsd/imsccv1p1/LOM/manifest http://www.imsglobal.org/profile/cc/ccv1p1/LOM/ccv1p1_lommanifest_v1p0.xsd">
  <metadata>
    <schema>IMS Common Cartridge</schema>
    <schemaversion>1.1.0</schemaversion>
{{- $lang := xml (default .DefaultLanguage .Meta.Language)}}
    <lomimscc:lom>
      <lomimscc:general>
        <lomimscc:title>
          <lomimscc:string language="{{$lang}}">{{xml .Meta.Title}}</lomimscc:string>
        </lomimscc:title>
        <lomimscc:description>
          <lomimscc:string language="{{$lang}}">{{xml .Meta.Description}}</lomimscc:string>
        </lomimscc:description>
        <lomimscc:keyword>
          <lomimscc:string language="{{$lang}}">{{xml (default .DefaultCategory .Meta.Category)}}</lomimscc:string>
        </lomimscc:keyword>
      </lomimscc:general>
    </lomimscc:lom>
  </metadata>
  <organizations>
    <organization identifier="{{xml .OrganizationID}}" structure="rooted-hierarchy">
      <item identifier="{{.RootItemID}}">
{{.ItemsXML}}      </item>
    </organization>
  </organizations>
  <resources>
{{- range .Resources}}
    <resource identifier="{{xml .ID}}" type="{{$.ResourceType}}">
      <file href="{{xml .Href}}"/>
    </resource>
{{- end}}
  </resources>
</manifest>
`
