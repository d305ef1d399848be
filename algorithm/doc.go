// Package algorithm 提供有根树引擎使用的底层结构：
// 显式栈欧拉序压平、倍增祖先表、模意义下的树状数组，以及按深度线性/二次展开的三树状数组存储。
//
// 所有结构在构建后尺寸固定，更新与查询不再分配内存；均不是并发安全的。
package algorithm
