package descriptor

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// tplLink общий каркас дескриптора; basic отличается от advantage только набором свойств
const tplLink = `<cartridge_basiclti_link xmlns="http://www.imsglobal.org/xsd/imslticc_v1p0"
    xmlns:blti="http://www.imsglobal.org/xsd/imsbasiclti_v1p0"
    xmlns:lticm="http://www.imsglobal.org/xsd/imslticm_v1p0"
    xmlns:lticp="http://www.imsglobal.org/xsd/imslticp_v1p0"
    xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
    xsi:schemaLocation="http://www.imsglobal.org/xsd/imslticc_v1p0 http://www.imsglobal.org/xsd/lti/ltiv1p0/imslticc_v1p0.xsd http://www.imsglobal.org/xsd/imsbasiclti_v1p0 http://www.imsglobal.org/xsd/lti/ltiv1p0/imsbasiclti_v1p0p1.xsd http://www.imsglobal.org/xsd/imslticm_v1p0 http://www.imsglobal.org/xsd/lti/ltiv1p0/imslticm_v1p0.xsd http://www.imsglobal.org/xsd/imslticp_v1p0 http://www.imsglobal.org/xsd/lti/ltiv1p0/imslticp_v1p0.xsd">
{{- $title := default .DefaultTitle .Title}}
  <blti:title>{{xml $title}}</blti:title>
  <blti:description>{{xml $title}}</blti:description>
{{- if .Icon}}
  <blti:icon>{{xml .Icon}}</blti:icon>
{{- end}}
  <blti:launch_url>{{xml .LaunchURL}}</blti:launch_url>
  <blti:secure_launch_url>{{xml .SecureLaunchURL}}</blti:secure_launch_url>
  <blti:vendor>
    <lticp:code>{{xml .Vendor.Code}}</lticp:code>
    <lticp:name>{{xml .Vendor.Name}}</lticp:name>
    <lticp:description>{{xml .Vendor.Description}}</lticp:description>
    <lticp:url>{{xml .Vendor.URL}}</lticp:url>
    <lticp:contact>
      <lticp:email>{{xml .Vendor.Contact}}</lticp:email>
    </lticp:contact>
  </blti:vendor>
{{- if .Properties}}
  <blti:extensions platform="{{xml .Platform}}">
{{- range .Properties}}
    <lticm:property name="{{.Name}}">{{xml .Value}}</lticm:property>
{{- end}}
  </blti:extensions>
{{- end}}
  <cartridge_bundle identifierref="BLTI001_Bundle"/>
  <cartridge_icon identifierref="BLTI001_Icon"/>
</cartridge_basiclti_link>
`
