package gpu

const pointsVertexShader = `#version 330 core
layout(location = 0) in vec3 position;
layout(location = 1) in vec3 color;

uniform mat4 uView;
uniform mat4 uProjection;
uniform float uSize;
uniform float uScale;
uniform bool uAttenuate;

out vec3 vColor;

void main() {
	vec4 mv = uView * vec4(position, 1.0);
	gl_Position = uProjection * mv;
	gl_PointSize = uSize;
	if (uAttenuate) {
		gl_PointSize *= uScale / -mv.z;
	}
	vColor = color;
}
` + "\x00"

const pointsFragmentShader = `#version 330 core
in vec3 vColor;

uniform bool uVertexColors;

out vec4 fragColor;

void main() {
	fragColor = vec4(uVertexColors ? vColor : vec3(1.0), 1.0);
}
` + "\x00"
